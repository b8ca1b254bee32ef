package auth

import "context"

type ctxKey struct{}

var ctxKeyUser = ctxKey{}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func UserFromContext(ctx context.Context) (User, bool) {
	if v := ctx.Value(ctxKeyUser); v != nil {
		if u, ok := v.(User); ok {
			return u, true
		}
	}
	return User{}, false
}
