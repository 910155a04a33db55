package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/config"
	userdomain "github.com/BruksfildServices01/barbershop-backoffice/internal/domain/user"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barbershop-backoffice/internal/logger"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware verifies the bearer token and upserts the user it names.
// Claims: sub (open id), name, email, login_method.
func AuthMiddleware(cfg *config.Config, users userdomain.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization header required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Expected a bearer token.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token claims unreadable.")
			c.Abort()
			return
		}

		openID, _ := claims["sub"].(string)
		if openID == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Token has no subject.")
			c.Abort()
			return
		}

		name, _ := claims["name"].(string)
		email, _ := claims["email"].(string)
		method, _ := claims["login_method"].(string)

		user, err := users.UpsertUser(c.Request.Context(), userdomain.UpsertInput{
			OpenID:      openID,
			Name:        name,
			Email:       email,
			LoginMethod: method,
		})
		if err != nil {
			logger.WithContext(c.Request.Context()).WithError(err).Error("user upsert failed")
			httperr.FromError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserRole, user.Role)

		c.Next()
	}
}

// ActorID returns the authenticated user id, if any.
func ActorID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
