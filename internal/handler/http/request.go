package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fieldops-id/fieldops-backend-go/internal/domain/auth"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/middleware"
	"github.com/fieldops-id/fieldops-backend-go/internal/handler/http/response"
	"github.com/fieldops-id/fieldops-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// currentUserID writes a 401 and returns false when the request carries no user.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrUnauthorized)
		return "", false
	}
	return userID, true
}

// pathID reads the {id} URL param and rejects anything that is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidUUID(id) {
		response.BadRequest(w, "Invalid ID format", nil)
		return "", false
	}
	return id, true
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func queryString(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

func newMeta(page, limit int, total int64, totalPages int, showing string) *response.Meta {
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
		Showing:    showing,
	}
}
