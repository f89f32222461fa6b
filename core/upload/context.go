package upload

import "context"

// resultContextKey is used as a key for storing the parse result in the
// request context.
type resultContextKey struct{}

// NewContext returns a context carrying the parse result. The middleware
// uses it to hand the result to downstream handlers.
func NewContext(ctx context.Context, res *Result) context.Context {
	return context.WithValue(ctx, resultContextKey{}, res)
}

// FromContext extracts the parse result attached by the middleware. The
// second return is false when no upload middleware ran for this request.
func FromContext(ctx context.Context) (*Result, bool) {
	res, ok := ctx.Value(resultContextKey{}).(*Result)
	return res, ok
}
