package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"user-crud-service/internal/usecase/user"
	apperrors "user-crud-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserRequest is the HTTP request body for POST and PUT.
// Pointer fields distinguish an absent key from an empty one.
type UserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserResponse is returned by POST /users
type CreateUserResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// MessageResponse is returned by PUT and DELETE
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// bindUser decodes the body and checks that both fields are present.
// Emptiness and format are left to the use case.
func (h *UserHandler) bindUser(c *gin.Context) (name, email string, ok bool) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid user request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: user.MsgMissingFields})
		return "", "", false
	}
	if req.Name == nil || req.Email == nil {
		h.log.Warn("user request is missing fields",
			zap.Bool("has_name", req.Name != nil),
			zap.Bool("has_email", req.Email != nil),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: user.MsgMissingFields})
		return "", "", false
	}
	return *req.Name, *req.Email, true
}

// parseID reads the :id path parameter. A non-integer id names no user,
// so it is answered with 404 like any other unknown id.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: user.MsgNotFound})
		return 0, false
	}
	return id, true
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	name, email, ok := h.bindUser(c)
	if !ok {
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  name,
		Email: email,
	})
	if err != nil {
		h.handleError(c, "CreateUser", err)
		return
	}

	c.JSON(http.StatusCreated, CreateUserResponse{
		Message: user.MsgCreated,
		UserID:  resp.ID,
	})
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, "GetUser", err)
		return
	}

	c.JSON(http.StatusOK, toResponse(resp.User))
}

// UpdateUser handles PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	name, email, ok := h.bindUser(c)
	if !ok {
		return
	}

	_, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:    id,
		Name:  name,
		Email: email,
	})
	if err != nil {
		h.handleError(c, "UpdateUser", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: user.MsgUpdated})
}

// DeleteUser handles DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	_, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{ID: id})
	if err != nil {
		h.handleError(c, "DeleteUser", err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: user.MsgDeleted})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, "ListUsers", err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toResponse(u)
	}

	c.JSON(http.StatusOK, users)
}

// handleError converts usecase errors to HTTP responses. Typed errors carry
// their own status; anything else is a 500 with the error text.
func (h *UserHandler) handleError(c *gin.Context, op string, err error) {
	status := http.StatusInternalServerError
	var statuser apperrors.HTTPStatuser
	if errors.As(err, &statuser) {
		status = statuser.HTTPStatus()
	}

	if status >= http.StatusInternalServerError {
		h.log.Error(op+" failed", zap.Error(err))
	} else {
		h.log.Info(op+" rejected", zap.Int("status", status), zap.Error(err))
	}

	c.JSON(status, ErrorResponse{Error: err.Error()})
}

func toResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
