package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"health-bridge-server/internal/config"
	"health-bridge-server/internal/models"
	"health-bridge-server/internal/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthMiddleware creates a middleware for doctor/government JWT
// authentication. Worker tokens are rejected here; worker-facing routes use
// WorkerAuthMiddleware instead.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.Unauthorized(c, "Authorization header with bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccountToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("userName", claims.Name)
		c.Set("hospitalName", claims.HospitalName)
		c.Set("hospitalID", claims.HospitalID)

		c.Next()
	}
}

// WorkerAuthMiddleware creates a middleware for worker session tokens issued
// through the OTP flow. Account tokens are rejected.
func WorkerAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.Unauthorized(c, "Authorization header with bearer token required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateWorkerToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Forbidden(c, "Worker token required: "+err.Error())
			c.Abort()
			return
		}

		c.Set("workerID", claims.WorkerID)
		c.Set("workerUniqueID", claims.UniqueID)
		c.Set("workerName", claims.Name)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("userRole")
		if !exists {
			utils.InternalServerError(c, "User role not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		role, ok := userRole.(models.Role)
		if !ok {
			utils.InternalServerError(c, "User role in context is not of expected type.")
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Helper function to get user ID from context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// Helper function to get user role from context
func GetUserRoleFromContext(c *gin.Context) (models.Role, bool) {
	userRole, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	role, ok := userRole.(models.Role)
	return role, ok
}

// GetHospitalNameFromContext returns the hospital name carried by the
// account token, if any.
func GetHospitalNameFromContext(c *gin.Context) string {
	if v, exists := c.Get("hospitalName"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetWorkerIDFromContext returns the authenticated worker's ID.
func GetWorkerIDFromContext(c *gin.Context) (string, bool) {
	workerID, exists := c.Get("workerID")
	if !exists {
		return "", false
	}
	idStr, ok := workerID.(string)
	return idStr, ok
}
