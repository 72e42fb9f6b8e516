package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"moodyme/backend/internal/models"
	appcfg "moodyme/backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtKey []byte

// Claims struct to be encoded to JWT
type Claims struct {
	UserID uuid.UUID       `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// InitializeJWT loads the JWT secret key from the application configuration.
func InitializeJWT() error {
	secret := appcfg.Cfg.JWTSecret
	if secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY environment variable not set")
	}
	jwtKey = []byte(secret)
	return nil
}

// GenerateToken generates a new JWT token for a given user.
func GenerateToken(user *models.User) (string, error) {
	if len(jwtKey) == 0 {
		return "", fmt.Errorf("JWT secret key not initialized. Call InitializeJWT() first")
	}

	expirationTime := time.Now().Add(appcfg.Cfg.JWTTokenLifespan)

	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "moodyme",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token string.
// Returns the claims if the token is valid, otherwise returns an error.
func ValidateToken(tokenString string) (*Claims, error) {
	if len(jwtKey) == 0 {
		return nil, fmt.Errorf("JWT secret key not initialized")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("error parsing token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// AuthMiddleware creates a Gin middleware for JWT authentication.
// It checks for a valid JWT in the Authorization header (Bearer token).
// If valid, it sets the user's claims in the Gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}
		tokenString := parts[1]

		claims, err := ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: " + err.Error()})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// AdminRequired creates a Gin middleware that rejects non-admin callers.
// It must run after AuthMiddleware.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, ok := c.Get("userRole")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		role, ok := roleValue.(models.UserRole)
		if !ok || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			return
		}
		c.Next()
	}
}
