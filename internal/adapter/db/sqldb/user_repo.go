package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-service/internal/domain/user"
)

// pgUniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// UserRepo implements the user Repository on top of GORM.
// Every method runs a single statement on its own pooled connection,
// which is handed back to the pool before the method returns.
type UserRepo struct {
	db  *gorm.DB    // GORM database handle (SQLite or PostgreSQL)
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`          // Unique identifier with auto-increment
	Name      string    `gorm:"not null"`                          // User's name (required)
	Email     string    `gorm:"not null;unique"`                   // User's email address (required, unique)
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"` // Creation time
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() *user.User {
	return &user.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

// withConn checks out one connection for the duration of fn.
func (r *UserRepo) withConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Connection(fn)
}

// InitSchema creates the users table when it does not exist yet.
func (r *UserRepo) InitSchema(ctx context.Context) error {
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		m := tx.Migrator()
		if m.HasTable(&UserSchema{}) {
			return nil
		}
		return m.CreateTable(&UserSchema{})
	})
	if err != nil {
		r.log.Error("failed to init schema", zap.Error(err))
		return fmt.Errorf("failed to init schema: %w", err)
	}

	r.log.Debug("users schema ready")
	return nil
}

// Create inserts a new user and returns the assigned ID.
// It fails with user.ErrDuplicateKey if the email is taken.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	err := r.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Create(&model).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			r.log.Warn("email already taken", zap.String("email", u.Email))
			return 0, fmt.Errorf("failed to create user: %w", user.ErrDuplicateKey)
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Update overwrites name and email of the row with u.ID.
// It returns the number of affected rows, 0 when no such row exists.
func (r *UserRepo) Update(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	var affected int64
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&UserSchema{}).
			Where("id = ?", u.ID).
			Updates(map[string]any{"name": u.Name, "email": u.Email})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			r.log.Warn("email already taken", zap.String("email", u.Email), zap.Int64("id", u.ID))
			return 0, fmt.Errorf("failed to update user: %w", user.ErrDuplicateKey)
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return 0, fmt.Errorf("failed to update user: %w", err)
	}

	r.log.Info("user updated in db", zap.Int64("id", u.ID), zap.Int64("affected", affected))
	return affected, nil
}

// Delete removes a user by ID and returns the number of affected rows.
func (r *UserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Delete(&UserSchema{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id), zap.Int64("affected", affected))
	return affected, nil
}

// GetByID retrieves a user by ID. A missing row yields (nil, nil).
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Take(&model, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain(), nil
}

// List returns every user in insertion order.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	err := r.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Order("id").Find(&models).Error
	})
	if err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = *model.toDomain()
	}

	return users, nil
}

// isDuplicateKey recognizes unique violations from either dialect,
// translated by GORM or not.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
