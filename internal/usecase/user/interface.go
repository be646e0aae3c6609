package user

import (
	"context"

	domain "user-crud-service/internal/domain/user"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error)
	GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
}

// Repository defines the interface for user data access operations.
// Implementations report email collisions as domain.ErrDuplicateKey.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)   // Insert, returns the new ID
	GetByID(ctx context.Context, id int64) (*domain.User, error) // nil, nil when absent
	Update(ctx context.Context, u *domain.User) (int64, error)   // Affected row count
	Delete(ctx context.Context, id int64) (int64, error)         // Affected row count
	List(ctx context.Context) ([]domain.User, error)             // All rows in insertion order
}
