package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/brpay/pixledger/pkg/utils"
)

type ContextKey string

const (
	AccountIDKey ContextKey = "accountID"
	RoleKey      ContextKey = "role"
)

const operatorRole = "OPERATOR"

// Middleware validates the Bearer token and puts the account id and role into
// the request context.
func Middleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOperator gates operator-only routes. Must run after Middleware.
func RequireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleKey).(string)
		if role != operatorRole {
			utils.RespondWithError(w, http.StatusForbidden, "Operator access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AccountIDFromContext extracts the authenticated account id.
func AccountIDFromContext(ctx context.Context) int {
	id, _ := ctx.Value(AccountIDKey).(int)
	return id
}

// IsOperator reports whether the authenticated account carries the operator role.
func IsOperator(ctx context.Context) bool {
	role, _ := ctx.Value(RoleKey).(string)
	return role == operatorRole
}
