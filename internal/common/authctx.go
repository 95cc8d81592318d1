package common

import "context"

type contextKey int

const staffIDKey contextKey = iota

// WithUserID tags the request context with the acting staff account id.
// Ledger entries and sale headers read it back through UserID.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, staffIDKey, id)
}

// UserID reports the staff account id set by the auth middleware, if any.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(staffIDKey).(string)
	return id, ok
}
