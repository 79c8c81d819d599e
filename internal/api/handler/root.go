package handler

import (
	"net/http"

	"github.com/divisadero/divisadero/internal/api/middleware"
	"github.com/divisadero/divisadero/internal/api/response"
)

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	response.Success(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Divisadero API",
	}, requestID)
}
