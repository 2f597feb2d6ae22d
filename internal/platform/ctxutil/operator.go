package ctxutil

import "context"

type operatorDataKey struct{}

// OperatorData identifies the admin user behind a request, as asserted by a
// verified bearer token.
type OperatorData struct {
	OperatorID string
}

func WithOperatorData(ctx context.Context, od *OperatorData) context.Context {
	return context.WithValue(ctx, operatorDataKey{}, od)
}

func GetOperatorData(ctx context.Context) *OperatorData {
	if od, ok := ctx.Value(operatorDataKey{}).(*OperatorData); ok {
		return od
	}
	return nil
}

// OperatorID returns the operator id on ctx, or "" when none is attached.
func OperatorID(ctx context.Context) string {
	if od := GetOperatorData(ctx); od != nil {
		return od.OperatorID
	}
	return ""
}
