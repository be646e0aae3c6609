package user

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-crud-service/internal/domain/user"
	apperrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/validation"
)

// UserUsecase implements Usecase. It normalizes and validates input,
// delegates to the repository and translates storage outcomes into
// typed application errors.
type UserUsecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

var _ Usecase = (*UserUsecase)(nil)

// New creates a new instance of UserUsecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: r, log: log, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Only fails on malformed tag names.
	if err := validation.Register(v); err != nil {
		panic(err)
	}
	return v
}

// formatValidationError converts validator.ValidationErrors into a client-facing ValidationError.
// A missing field wins over a malformed one.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.NewValidationError("", err.Error())
	}

	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return apperrors.NewValidationError(e.Field(), MsgMissingFields)
		}
	}

	e := validationErrors[0]
	switch e.Tag() {
	case validation.NameTag:
		return apperrors.NewValidationError(e.Field(), MsgInvalidName)
	case validation.EmailTag:
		return apperrors.NewValidationError(e.Field(), MsgInvalidEmail)
	default:
		return apperrors.NewValidationError(e.Field(), e.Error())
	}
}

func storageFault(err error) error {
	return apperrors.NewInternalError("storage error", err)
}

// CreateUser normalizes and validates the input, then inserts the user.
func (uc *UserUsecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	in.Name = validation.NormalizeName(in.Name)
	in.Email = validation.NormalizeEmail(in.Email)

	uc.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			uc.log.Warn("email already exists", zap.String("email", in.Email))
			return nil, apperrors.NewAlreadyExistsError("user", MsgDuplicate)
		}
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, storageFault(err)
	}

	return &CreateUserResponse{ID: id}, nil
}

// UpdateUser replaces name and email of an existing user.
func (uc *UserUsecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	in.Name = validation.NormalizeName(in.Name)
	in.Email = validation.NormalizeEmail(in.Email)

	uc.log.Info("updating user", zap.Int64("id", in.ID), zap.String("name", in.Name), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	affected, err := uc.repo.Update(ctx, &domain.User{
		ID:    in.ID,
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			uc.log.Warn("email already exists", zap.String("email", in.Email), zap.Int64("id", in.ID))
			return nil, apperrors.NewAlreadyExistsError("user", MsgDuplicate)
		}
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, storageFault(err)
	}
	if affected == 0 {
		uc.log.Warn("update target not found", zap.Int64("id", in.ID))
		return nil, apperrors.NewNotFoundError("user", MsgNotFound)
	}

	return &UpdateUserResponse{ID: in.ID}, nil
}

// DeleteUser permanently removes a user.
func (uc *UserUsecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	uc.log.Info("deleting user", zap.Int64("id", in.ID))

	affected, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, storageFault(err)
	}
	if affected == 0 {
		uc.log.Warn("delete target not found", zap.Int64("id", in.ID))
		return nil, apperrors.NewNotFoundError("user", MsgNotFound)
	}

	return &DeleteUserResponse{ID: in.ID}, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUsecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, storageFault(err)
	}
	if u == nil {
		uc.log.Debug("user not found", zap.Int64("id", in.ID))
		return nil, apperrors.NewNotFoundError("user", MsgNotFound)
	}

	return &GetUserResponse{User: toDTO(*u)}, nil
}

// ListUsers returns every user.
func (uc *UserUsecase) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		uc.log.Error("failed to list users", zap.Error(err))
		return nil, storageFault(err)
	}

	users := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = toDTO(du)
	}

	uc.log.Debug("listed users", zap.Int("count", len(users)))
	return &ListUsersResponse{Users: users}, nil
}

func toDTO(u domain.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
