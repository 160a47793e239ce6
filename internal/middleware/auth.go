package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
	"github.com/locvowork/hotel_scheduler/apigateway/internal/service/serviceutils"
)

// ContextKeyClaims is the echo context key holding *Claims.
const ContextKeyClaims = "claims"

var errMissingSecret = errors.New("JWT secret key is missing")

// Claims is the token payload issued by the auth service.
type Claims struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token. The service only verifies tokens;
// this exists for tooling and tests.
func GenerateToken(secret, userID, email string, role domain.Role, exp time.Time) (string, error) {
	if secret == "" {
		return "", errMissingSecret
	}
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken verifies an HS256 token and returns its claims.
func ValidateToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errMissingSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// JWT requires a valid bearer token and stores its claims in the context.
func JWT(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return serviceutils.ResponseError(c, http.StatusUnauthorized, "Authorization header missing", nil)
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return serviceutils.ResponseError(c, http.StatusUnauthorized, "Invalid authorization header", nil)
			}
			claims, err := ValidateToken(secret, parts[1])
			if err != nil {
				return serviceutils.ResponseError(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Set(ContextKeyClaims, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the request claims, or nil when auth is not mounted.
func ClaimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(ContextKeyClaims).(*Claims)
	return claims
}

// RoleFrom returns the caller's role. Requests without claims count as staff.
func RoleFrom(c echo.Context) domain.Role {
	if claims := ClaimsFrom(c); claims != nil && claims.Role != "" {
		return claims.Role
	}
	return domain.RoleStaff
}

// RequireManager rejects callers without the manager capability.
func RequireManager() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !RoleFrom(c).IsManager() {
				return serviceutils.ResponseError(c, http.StatusForbidden, "Manager role required", domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
