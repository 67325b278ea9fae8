package middleware

import "context"

type contextKey string

const (
	contextKeyHousehold contextKey = "auth.household_id"
	contextKeySubject   contextKey = "auth.subject"
)

// WithIdentity stores the caller identity in context.
func WithIdentity(ctx context.Context, householdID int64, subject string) context.Context {
	ctx = context.WithValue(ctx, contextKeyHousehold, householdID)
	ctx = context.WithValue(ctx, contextKeySubject, subject)
	return ctx
}

// HouseholdIDFromContext extracts the household id from context.
func HouseholdIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(contextKeyHousehold).(int64)
	return id, ok && id > 0
}

// SubjectFromContext extracts the token subject from context.
func SubjectFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if subject, ok := ctx.Value(contextKeySubject).(string); ok {
		return subject
	}
	return ""
}
