package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yleanad/village-homeschool-app/internal/helpers"
	"github.com/yleanad/village-homeschool-app/internal/models"
	"github.com/yleanad/village-homeschool-app/internal/services"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details in production
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// AuthMiddleware validates the access token from the cookie (or bearer
// header), refreshing it once if expired, then resolves the family profile
// and publishes an explicit session for the handlers.
func AuthMiddleware(userService *services.UserService, familyRepo models.FamilyRepo, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("missing access token"))
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err != nil {
			claims, err = tryRefresh(c, userService, logger)
			if err != nil {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
				c.Abort()
				return
			}
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			logger.Error("invalid user id in token", "subject", claims.Subject, "error", err)
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid token subject"))
			c.Abort()
			return
		}

		session := &helpers.Session{
			UserID: userID,
			Email:  claims.Email,
		}

		// FamilyID stays nil until onboarding completes; handlers that need
		// one check Session.HasFamily.
		profile, err := familyRepo.GetProfileByUserID(c.Request.Context(), userID)
		if err == nil {
			session.FamilyID = profile.ID
		} else if !errors.Is(err, models.ErrNotFound) {
			logger.Error("family profile lookup failed", "user_id", userID, "error", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse("internal error"))
			c.Abort()
			return
		}

		c.Set("session", session)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func tryRefresh(c *gin.Context, userService *services.UserService, logger *slog.Logger) (*helpers.CustomClaims, error) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		return nil, errors.New("no refresh token")
	}

	tokenRes, err := userService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		logger.Error("token refresh failed", "error", err)
		return nil, err
	}

	isProduction := os.Getenv("GIN_MODE") == "production"
	c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
	c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

	return helpers.ValidateToken(tokenRes.AccessToken)
}
