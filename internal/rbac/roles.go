package rbac

import (
	"context"
	"fmt"
)

// Role is the closed set of portal roles. Anything else is rejected at
// the parse boundary so handlers never compare ad hoc strings.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleProf  Role = "prof"
	RoleEleve Role = "eleve"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleProf, RoleEleve:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// HasRole reports whether r is one of the allowed roles.
func HasRole(r Role, allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// ---- role in context ----

type ctxKey struct{}

var ctxKeyRole = ctxKey{}

func WithRole(ctx context.Context, role Role) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) Role {
	if v := ctx.Value(ctxKeyRole); v != nil {
		if r, ok := v.(Role); ok {
			return r
		}
	}
	return ""
}
