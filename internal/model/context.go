package model

import "context"

// ContextManager stores and retrieves the authenticated username on a request context.
type ContextManager interface {
	SetUsernameToContext(ctx context.Context, username string) context.Context
	GetUsernameFromContext(ctx context.Context) (string, bool)
}
