package router_test

import (
	"journey-api/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	// Setup router. For this test, handlers can be nil.
	r := router.NewRouter(nil, nil, nil, nil)

	req, _ := http.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	expectedBody := `{"status":"API is healthy and running"}`
	assert.JSONEq(t, expectedBody, rr.Body.String())
}

func TestProtectedRoutes_RequireBearerToken(t *testing.T) {
	r := router.NewRouter(nil, nil, nil, nil)

	routes := []struct {
		method string
		target string
	}{
		{"POST", "/todo"},
		{"PATCH", "/todo/1"},
		{"DELETE", "/todo/1"},
		{"GET", "/todo/journey"},
		{"GET", "/todo/date"},
		{"GET", "/retrospect/value"},
		{"POST", "/retrospect"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			req, _ := http.NewRequest(route.method, route.target, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), `"code":"TOKEN_INVALID"`)
		})
	}
}

func TestProtectedRoutes_RejectMalformedHeader(t *testing.T) {
	r := router.NewRouter(nil, nil, nil, nil)

	req, _ := http.NewRequest("GET", "/todo/date", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
