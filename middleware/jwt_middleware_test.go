package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestJWTMiddlewareAcceptsGeneratedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("42", "frontdesk@school.example", "Front Desk", "staff")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	e := echo.New()
	handler := JWTMiddleware()(func(c echo.Context) error {
		claims := GetUserFromToken(c)
		if claims == nil {
			t.Fatal("expected claims in context after validation")
		}
		if claims.UserID != "42" || claims.FullName != "Front Desk" || claims.UserType != "staff" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		if got := c.Get("userId"); got != "42" {
			t.Fatalf("expected userId context key 42, got %v", got)
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()

	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("middleware rejected a freshly generated token: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJWTMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	e := echo.New()
	handler := JWTMiddleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	err := handler(e.NewContext(req, httptest.NewRecorder()))

	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestGenerateJWTWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateJWT("42", "frontdesk@school.example", "Front Desk", "staff"); err == nil {
		t.Fatal("expected an error when JWT_SECRET is unset")
	}
}

func TestGetJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if got := GetJWTSecret(); got != "test-secret" {
		t.Fatalf("expected configured secret, got %q", got)
	}
}
