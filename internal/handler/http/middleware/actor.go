package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorCtxKey struct{}

// Actor resolves who is calling. A bearer token, when sent, must verify
// against ja and name the actor; requests without one act as defaultActor.
// With a nil ja tokens are not inspected.
func Actor(ja *jwtauth.JWTAuth, defaultActor string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			actor := defaultActor

			if ja != nil && strings.TrimSpace(r.Header.Get("Authorization")) != "" {
				token, err := jwtauth.VerifyRequest(ja, r, jwtauth.TokenFromHeader)
				if err != nil {
					response.Unauthorized(w, jwtauth.ErrorReason(err).Error())
					return
				}

				ctx := jwtauth.NewContext(r.Context(), token, nil)
				actor, err = jwt.ActorFromContext(ctx)
				if err != nil {
					response.Unauthorized(w, "Token does not name an actor")
					return
				}
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, actor)
}

// ActorFromContext returns the actor set by Actor, or "".
func ActorFromContext(ctx context.Context) string {
	actor, _ := ctx.Value(actorCtxKey{}).(string)
	return actor
}
