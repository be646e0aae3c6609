package logger

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header used to propagate request IDs.
const RequestIDHeader = "X-Request-ID"

// NewRequestID generates a random request ID.
func NewRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID stores id in ctx. An empty id is replaced with a fresh one.
func ContextWithRequestID(ctx context.Context, id string) (context.Context, string) {
	if id == "" {
		id = NewRequestID()
	}
	return context.WithValue(ctx, RequestIDKey, id), id
}
