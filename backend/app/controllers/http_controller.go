package controllers

import (
	"net/http"
)

// HTTPController serves the unauthenticated operational endpoints.
type HTTPController struct{}

func NewHTTPController() *HTTPController {
	return &HTTPController{}
}

// Ping is the health check behind GET and HEAD /ping. It touches neither the
// database nor the session store.
func (c *HTTPController) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte("pong"))
}
