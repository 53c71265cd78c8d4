package jwt

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var ErrNoActor = errors.New("token carries no actor")

type Service interface {
	// IssueToken signs an access token naming actor.
	IssueToken(actor string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	expiration time.Duration
	tokenAuth  *jwtauth.JWTAuth
	now        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, expiration time.Duration) Service {
	return &JWTService{
		expiration: expiration,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:        time.Now,
	}
}

func (j *JWTService) IssueToken(actor string) (token string, expiresAt int64, err error) {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return "", 0, ErrNoActor
	}

	now := j.now()
	expiresAt = now.Add(j.expiration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  actor,
		"name": actor,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// ActorFromContext returns the actor named by the verified token in ctx,
// preferring the name claim over sub.
func ActorFromContext(ctx context.Context) (string, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", jwtauth.ErrNoTokenFound
	}

	if name, ok := claims["name"].(string); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name), nil
	}
	if sub := strings.TrimSpace(token.Subject()); sub != "" {
		return sub, nil
	}
	return "", ErrNoActor
}
