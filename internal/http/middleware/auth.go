package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/leadbridge-backend/internal/http/response"
	"github.com/yungbote/leadbridge-backend/internal/platform/ctxutil"
	"github.com/yungbote/leadbridge-backend/internal/platform/logger"
)

var (
	errMissingToken  = errors.New("authorization token missing")
	errInvalidToken  = errors.New("invalid or expired authorization token")
	errMissingUserID = errors.New("invalid user id in token")
)

// AuthMiddleware verifies HS256 bearer tokens issued by the admin console.
type AuthMiddleware struct {
	log    *logger.Logger
	secret []byte
	parser *jwt.Parser
}

// NewAuthMiddleware returns nil when secret is empty; a nil middleware lets
// every request through.
func NewAuthMiddleware(log *logger.Logger, secret string) *AuthMiddleware {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil
	}
	return &AuthMiddleware{
		log:    log.With("Middleware", "AuthMiddleware"),
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	if am == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			return
		}
		operatorID, err := am.Verify(tokenString)
		if err != nil {
			am.log.Debug("Rejected bearer token", "error", err)
			response.AbortError(c, http.StatusUnauthorized, "unauthorized", err)
			return
		}
		ctx := ctxutil.WithOperatorData(c.Request.Context(), &ctxutil.OperatorData{OperatorID: operatorID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Verify checks the signature and expiry of tokenString and returns the
// operator id carried in its "id" or "userId" claim.
func (am *AuthMiddleware) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	tok, err := am.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return am.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return "", errInvalidToken
	}
	for _, key := range []string{"id", "userId"} {
		if id, ok := claimID(claims[key]); ok {
			return id, nil
		}
	}
	return "", errMissingUserID
}

func claimID(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case float64:
		if t != float64(int64(t)) {
			return "", false
		}
		return strconv.FormatInt(int64(t), 10), true
	case nil:
		return "", false
	default:
		s := strings.TrimSpace(fmt.Sprint(t))
		return s, s != ""
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
