package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(mw gin.HandlerFunc, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/curso", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/curso", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestOpenPolicyEchoesOrigin(t *testing.T) {
	rec := serve(New(nil), http.MethodGet, "http://app.local")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://app.local", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
}

func TestAllowListMatchesNormalizedOrigin(t *testing.T) {
	mw := New([]string{"https://portal.faculdade.edu/"})

	rec := serve(mw, http.MethodGet, "https://Portal.faculdade.edu")
	assert.Equal(t, "https://Portal.faculdade.edu", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(mw, http.MethodGet, "https://evil.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	mw := New([]string{"https://portal.faculdade.edu"})

	rec := serve(mw, http.MethodOptions, "https://portal.faculdade.edu")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, allowMethods, rec.Header().Get("Access-Control-Allow-Methods"))

	rec = serve(mw, http.MethodOptions, "https://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
