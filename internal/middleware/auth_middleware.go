package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/app/repositories"
	"github.com/odemir/studentbook/internal/app/workflow"
	"github.com/odemir/studentbook/internal/pkg/apperrors"
	"github.com/odemir/studentbook/internal/pkg/auth"
)

// SessionNotifier receives the current session state on every authentication
// decision. Delivery is idempotent on the receiving side, so announcing an
// already-known session is harmless.
type SessionNotifier interface {
	SessionChanged(ctx context.Context, ev workflow.SessionEvent)
}

// AuthMiddleware for authentication
type AuthMiddleware struct {
	jwtService  *auth.JWTService
	sessionRepo *repositories.SessionRepository
	notifier    SessionNotifier
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, sessionRepo *repositories.SessionRepository, notifier SessionNotifier) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		sessionRepo: sessionRepo,
		notifier:    notifier,
	}
}

// JWTAuth validates the bearer token and its backing session row. A valid
// token whose session row is gone (signed out elsewhere, or expired) is
// rejected, since the session row is the source of truth.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			errorDetail = errorDetail.WithDetails("Authorization header missing")

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		var tokenString string
		if strings.Count(authHeader, ".") == 2 && !strings.HasPrefix(authHeader, "Bearer ") {
			// Raw JWT without the Bearer prefix
			tokenString = authHeader
		} else {
			var err error
			tokenString, err = auth.ExtractBearerToken(authHeader)
			if err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
				errorDetail = errorDetail.WithDetails("Invalid token format")

				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			errorCode := dto.ErrorCodeInvalidToken
			errorDetails := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				errorCode = dto.ErrorCodeExpiredToken
				errorDetails = "Token has expired"
			}

			errorDetail := dto.NewErrorDetail(errorCode, "Authentication failed")
			errorDetail = errorDetail.WithDetails(errorDetails)

			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		// The session row must still exist
		session, err := m.sessionRepo.GetByID(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrSessionNotFound) {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeSessionNotFound, "Session is no longer active")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}

			errorDetail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Failed to verify session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
			return
		}

		// Redeliver the current session state. After a restart this is what
		// rebinds the console for sessions that are still valid.
		m.notifier.SessionChanged(c.Request.Context(), workflow.SessionEvent{
			Kind:      workflow.SignedIn,
			SessionID: session.ID,
			UserID:    claims.UserID,
			Email:     claims.Email,
		})

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("roleType", claims.RoleType)
		c.Set("sessionID", claims.SessionID)

		c.Next()
	}
}
