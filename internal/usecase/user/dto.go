package user

import "time"

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name  string `validate:"required,person_name"`
	Email string `validate:"required,email_address"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID int64
}

// UpdateUserRequest represents the request payload for updating an existing user.
type UpdateUserRequest struct {
	ID    int64
	Name  string `validate:"required,person_name"`
	Email string `validate:"required,email_address"`
}

// UpdateUserResponse represents the response payload after updating a user.
type UpdateUserResponse struct {
	ID int64
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	User User
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []User
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
}
