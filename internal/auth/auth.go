package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/crewwell/crewwell-api/internal/model"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the trusted {tenant, user, role} tuple the sync core receives
// from authentication. Everything downstream takes tenant and user from
// here, never from request payloads.
type Identity struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     model.Role
}

// JWTCfg holds JWT authentication configuration
type JWTCfg struct {
	HS256Secret string // HMAC secret for HS256 tokens
	DevMode     bool   // Allow X-Debug-* headers (DANGEROUS: only for local dev)
}

// Middleware creates HTTP middleware that resolves the caller identity.
// Supports two modes:
//  1. Production: Bearer token with sub / tenant_id / role claims
//  2. Development: X-Debug-User, X-Debug-Tenant, X-Debug-Role headers
//     (ONLY when DevMode=true)
func Middleware(cfg JWTCfg) func(http.Handler) http.Handler {
	if cfg.DevMode {
		log.Warn().Msg("SECURITY WARNING: DevMode enabled - X-Debug-* headers will bypass JWT authentication")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := ""
			if h := r.Header.Get("Authorization"); len(h) > 7 && h[:7] == "Bearer " {
				tok = h[7:]
			}

			var userStr, tenantStr, roleStr string

			if cfg.DevMode && tok == "" {
				userStr = r.Header.Get("X-Debug-User")
				tenantStr = r.Header.Get("X-Debug-Tenant")
				roleStr = r.Header.Get("X-Debug-Role")
			}

			if tok != "" {
				claims := jwt.MapClaims{}
				t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
					if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, jwt.ErrSignatureInvalid
					}
					return []byte(cfg.HS256Secret), nil
				})
				if err != nil || !t.Valid {
					log.Warn().Err(err).Msg("jwt validation failed")
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}

				if s, ok := claims["sub"].(string); ok {
					userStr = s
				}
				if s, ok := claims["tenant_id"].(string); ok {
					tenantStr = s
				}
				if s, ok := claims["role"].(string); ok {
					roleStr = s
				}
			}

			userID, err1 := uuid.Parse(userStr)
			tenantID, err2 := uuid.Parse(tenantStr)
			role, ok := model.ParseRole(roleStr)
			if err1 != nil || err2 != nil || !ok {
				log.Warn().
					Str("path", r.URL.Path).
					Msg("request lacks a complete identity (sub, tenant_id, role)")
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ident := Identity{TenantID: tenantID, UserID: userID, Role: role}
			ctx := context.WithValue(r.Context(), identityKey, ident)

			logger := log.Ctx(ctx).With().
				Str("tenant_id", tenantID.String()).
				Str("user_id", userID.String()).
				Logger()
			ctx = logger.WithContext(ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// From extracts the authenticated identity from request context.
func From(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}

// WithIdentity returns a context carrying the given identity. Used by tests
// and by internal callers that sit below the HTTP layer.
func WithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}
