package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-crud-service/internal/domain/user"
	apperrors "user-crud-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func setupTestUsecase(t *testing.T) (*UserUsecase, *MockRepository) {
	mockRepo := new(MockRepository)
	uc := New(mockRepo, zaptest.NewLogger(t))
	t.Cleanup(func() { mockRepo.AssertExpectations(t) })
	return uc, mockRepo
}

func requireValidationError(t *testing.T, err error, message string) {
	t.Helper()
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, message, verr.Message)
}

// ==================== CREATE USER TESTS ====================

func TestCreateUser_NormalizesInput(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Alice Smith" && u.Email == "alice@example.com"
	})).Return(int64(7), nil)

	resp, err := uc.CreateUser(ctx, CreateUserRequest{Name: "  Alice Smith ", Email: "ALICE@EXAMPLE.COM "})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateUserRequest
		message string
	}{
		{name: "missing name", req: CreateUserRequest{Email: "a@example.com"}, message: MsgMissingFields},
		{name: "missing email", req: CreateUserRequest{Name: "Alice"}, message: MsgMissingFields},
		{name: "blank name", req: CreateUserRequest{Name: "   ", Email: "a@example.com"}, message: MsgMissingFields},
		{name: "missing beats malformed", req: CreateUserRequest{Name: "John123"}, message: MsgMissingFields},
		{name: "name too short", req: CreateUserRequest{Name: "A", Email: "a@example.com"}, message: MsgInvalidName},
		{name: "name too long", req: CreateUserRequest{Name: strings.Repeat("a", 51), Email: "a@example.com"}, message: MsgInvalidName},
		{name: "name with digits", req: CreateUserRequest{Name: "John123", Email: "a@example.com"}, message: MsgInvalidName},
		{name: "bad email", req: CreateUserRequest{Name: "Alice", Email: "not-an-email"}, message: MsgInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The repository is never reached: no expectations are registered.
			uc, _ := setupTestUsecase(t)

			resp, err := uc.CreateUser(context.Background(), tt.req)
			assert.Nil(t, resp)
			requireValidationError(t, err, tt.message)
		})
	}
}

func TestCreateUser_AcceptsCyrillicAndHyphen(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(int64(1), nil).Twice()

	_, err := uc.CreateUser(ctx, CreateUserRequest{Name: "Анна", Email: "anna@example.ru"})
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, CreateUserRequest{Name: "Mary-Jane", Email: "user.name+tag@example.co"})
	require.NoError(t, err)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).
		Return(int64(0), fmt.Errorf("failed to create user: %w", domain.ErrDuplicateKey))

	resp, err := uc.CreateUser(ctx, CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	assert.Nil(t, resp)

	var dup *apperrors.AlreadyExistsError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, MsgDuplicate, dup.Error())
}

func TestCreateUser_StorageFault(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()
	fault := errors.New("disk I/O error")

	mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), fault)

	_, err := uc.CreateUser(ctx, CreateUserRequest{Name: "Alice", Email: "alice@example.com"})

	var internal *apperrors.InternalError
	require.ErrorAs(t, err, &internal)
	assert.ErrorIs(t, err, fault)
	assert.Contains(t, err.Error(), "disk I/O error")
}

// ==================== UPDATE USER TESTS ====================

func TestUpdateUser_Success(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Update", ctx, &domain.User{ID: 3, Name: "Bob", Email: "bob@example.com"}).Return(int64(1), nil)

	resp, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 3, Name: "Bob ", Email: " Bob@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
}

func TestUpdateUser_NotFound(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Update", ctx, mock.Anything).Return(int64(0), nil)

	_, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 9999, Name: "Bob", Email: "bob@example.com"})

	var nf *apperrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, MsgNotFound, nf.Error())
}

func TestUpdateUser_DuplicateEmail(t *testing.T) {
	uc, mockRepo := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Update", ctx, mock.Anything).Return(int64(0), domain.ErrDuplicateKey)

	_, err := uc.UpdateUser(ctx, UpdateUserRequest{ID: 1, Name: "Bob", Email: "taken@example.com"})

	var dup *apperrors.AlreadyExistsError
	assert.ErrorAs(t, err, &dup)
}

func TestUpdateUser_ValidationError(t *testing.T) {
	uc, _ := setupTestUsecase(t)

	_, err := uc.UpdateUser(context.Background(), UpdateUserRequest{ID: 1, Name: "Bob", Email: "bob@"})
	requireValidationError(t, err, MsgInvalidEmail)
}

// ==================== DELETE USER TESTS ====================

func TestDeleteUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("Delete", mock.Anything, int64(5)).Return(int64(1), nil)

		resp, err := uc.DeleteUser(context.Background(), DeleteUserRequest{ID: 5})
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("Delete", mock.Anything, int64(5)).Return(int64(0), nil)

		_, err := uc.DeleteUser(context.Background(), DeleteUserRequest{ID: 5})
		var nf *apperrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("storage fault", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("Delete", mock.Anything, int64(5)).Return(int64(0), errors.New("locked"))

		_, err := uc.DeleteUser(context.Background(), DeleteUserRequest{ID: 5})
		var internal *apperrors.InternalError
		assert.ErrorAs(t, err, &internal)
	})
}

// ==================== GET / LIST TESTS ====================

func TestGetUser(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, Name: "Alice", Email: "alice@example.com", CreatedAt: created}, nil)

		resp, err := uc.GetUser(context.Background(), GetUserRequest{ID: 1})
		require.NoError(t, err)
		assert.Equal(t, User{ID: 1, Name: "Alice", Email: "alice@example.com", CreatedAt: created}, resp.User)
	})

	t.Run("absent", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("GetByID", mock.Anything, int64(9999)).Return(nil, nil)

		_, err := uc.GetUser(context.Background(), GetUserRequest{ID: 9999})
		var nf *apperrors.NotFoundError
		assert.ErrorAs(t, err, &nf)
	})

	t.Run("storage fault", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("no such table: users"))

		_, err := uc.GetUser(context.Background(), GetUserRequest{ID: 1})
		var internal *apperrors.InternalError
		require.ErrorAs(t, err, &internal)
		assert.Contains(t, err.Error(), "no such table: users")
	})
}

func TestListUsers(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("List", mock.Anything).Return([]domain.User{
			{ID: 1, Name: "User One", Email: "one@example.com"},
			{ID: 2, Name: "User Two", Email: "two@example.com"},
		}, nil)

		resp, err := uc.ListUsers(context.Background())
		require.NoError(t, err)
		require.Len(t, resp.Users, 2)
		assert.Equal(t, int64(2), resp.Users[1].ID)
	})

	t.Run("empty", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("List", mock.Anything).Return([]domain.User{}, nil)

		resp, err := uc.ListUsers(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, resp.Users)
		assert.Empty(t, resp.Users)
	})

	t.Run("storage fault", func(t *testing.T) {
		uc, mockRepo := setupTestUsecase(t)
		mockRepo.On("List", mock.Anything).Return(nil, errors.New("database is locked"))

		_, err := uc.ListUsers(context.Background())
		var internal *apperrors.InternalError
		assert.ErrorAs(t, err, &internal)
	})
}
