package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/findlocalfirewood/firewood-api/internal/api/handler/v1/response"
	"github.com/findlocalfirewood/firewood-api/internal/pkg/jwthelper"
)

// UserIDKey is the gin context key holding the caller's uuid.UUID.
const UserIDKey = "userID"

var (
	errMissingToken      = errors.New("missing bearer token")
	errUserAgentMismatch = errors.New("token was issued to a different client")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a valid token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := a.authenticate(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(UserIDKey, userID)
		ctx.Next()
	}
}

// OptionalJWT sets the user when a valid token is present and lets
// anonymous requests through. A present but invalid token is rejected.
func (a *Authenticator) OptionalJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, err := a.authenticate(ctx)
		switch {
		case errors.Is(err, errMissingToken):
		case err != nil:
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		default:
			ctx.Set(UserIDKey, userID)
		}

		ctx.Next()
	}
}

func (a *Authenticator) authenticate(ctx *gin.Context) (uuid.UUID, error) {
	header := ctx.GetHeader("Authorization")
	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" {
		return uuid.Nil, errMissingToken
	}

	claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimSpace(tokenStr))
	if err != nil {
		return uuid.Nil, err
	}
	if claims.UserAgent != ctx.Request.UserAgent() {
		return uuid.Nil, errUserAgentMismatch
	}

	return claims.UserID, nil
}

// UserID returns the authenticated caller, if any.
func UserID(ctx *gin.Context) (uuid.UUID, bool) {
	v, ok := ctx.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)

	return id, ok
}
