package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(allowed))
	router.POST("/generate-docx", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestCORSOptionsPreflight(t *testing.T) {
	router := corsRouter([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/generate-docx", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	assertCORSHeaders(t, resp, "http://localhost:5173")
}

func TestCORSWildcardAllowsAnyOrigin(t *testing.T) {
	router := corsRouter([]string{"*"})

	req := httptest.NewRequest(http.MethodPost, "/generate-docx", nil)
	req.Header.Set("Origin", "https://lab.example.edu")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	assertCORSHeaders(t, resp, "https://lab.example.edu")
}

func TestCORSUnknownOriginGetsNoHeaders(t *testing.T) {
	router := corsRouter([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodPost, "/generate-docx", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no Allow-Origin for unknown origin, got %q", got)
	}
}

func assertCORSHeaders(t *testing.T, resp *httptest.ResponseRecorder, origin string) {
	t.Helper()
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != origin {
		t.Fatalf("expected Allow-Origin %q, got %q", origin, got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("expected Allow-Methods header")
	}
	if got := resp.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatalf("expected Allow-Headers header")
	}
}
