package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func issueToken(t *testing.T, secret, subject string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runAuth(t *testing.T, authHeader string) (int, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID string
	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		gotUserID = UserID(c)
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec.Code, gotUserID
}

func TestJWTAuthValidToken(t *testing.T) {
	code, userID := runAuth(t, "Bearer "+issueToken(t, testSecret, "user-1"))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "user-1", userID)
}

func TestJWTAuthMissingToken(t *testing.T) {
	code, _ := runAuth(t, "")
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	code, _ := runAuth(t, "Bearer "+issueToken(t, "other-secret", "user-1"))
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	code, _ := runAuth(t, "Bearer "+signed)
	require.Equal(t, http.StatusUnauthorized, code)
}
