package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/hotel_scheduler/apigateway/internal/domain"
)

const testSecret = "test-secret"

func newAuthServer(secret string) *echo.Echo {
	e := echo.New()
	g := e.Group("")
	if secret != "" {
		g.Use(JWT(secret))
	}
	g.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, string(RoleFrom(c)))
	})
	g.PUT("/budget", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RequireManager())
	return e
}

func do(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(testSecret, "u1", "m@hotel.test", domain.RoleManager, time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleManager, claims.Role)

	_, err = ValidateToken("other-secret", token)
	assert.Error(t, err)

	_, err = GenerateToken("", "u1", "", domain.RoleStaff, time.Now())
	assert.Error(t, err)
}

func TestValidateToken_Rejects(t *testing.T) {
	expired, err := GenerateToken(testSecret, "u1", "", domain.RoleAdmin, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ValidateToken(testSecret, expired)
	assert.Error(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: domain.RoleAdmin}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateToken(testSecret, none)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	e := newAuthServer(testSecret)
	manager, err := GenerateToken(testSecret, "u1", "", domain.RoleManager, time.Now().Add(time.Hour))
	require.NoError(t, err)
	staff, err := GenerateToken(testSecret, "u2", "", domain.RoleStaff, time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/whoami", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/whoami", "garbage").Code)

	rec := do(e, http.MethodGet, "/whoami", manager)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "manager", rec.Body.String())

	assert.Equal(t, http.StatusNoContent, do(e, http.MethodPut, "/budget", manager).Code)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodPut, "/budget", staff).Code)
}

func TestWithoutSecretEveryoneIsStaff(t *testing.T) {
	e := newAuthServer("")

	rec := do(e, http.MethodGet, "/whoami", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "staff", rec.Body.String())
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodPut, "/budget", "").Code)
}
