package middleware

import (
	"net/http"
	"strings"

	"github.com/DanijelPavlovic/valere-margins-challenge/db"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/auth"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/models"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthenticatedUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewError(http.StatusUnauthorized, "Authorization token is required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewError(http.StatusUnauthorized, "Authorization header format must be Bearer {token}"))
			return
		}

		tokenString := parts[1]

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewError(http.StatusUnauthorized, "Invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewError(http.StatusUnauthorized, "Invalid token claims"))
			return
		}

		userIDFloat, ok := claims["sub"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewError(http.StatusUnauthorized, "Invalid subject in token claims"))
			return
		}

		userID := uint(userIDFloat)

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewError(http.StatusUnauthorized, "User not found"))
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
		})
		ctx.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.NewError(http.StatusUnauthorized, "User not authenticated"))
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok || user.Role != models.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, types.NewError(http.StatusForbidden, "Admin role required"))
			return
		}

		ctx.Next()
	}
}
