package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/taskhub/dto"
	"github.com/upb/taskhub/middleware"
	"github.com/upb/taskhub/repositories"
	"github.com/upb/taskhub/utils"
	"go.uber.org/zap"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// decodeBody reads the request body and decodes it against schema.
// It writes the error response itself and reports whether the handler may continue.
func decodeBody(w http.ResponseWriter, r *http.Request, schema utils.Schema, out interface{}, logger *zap.Logger) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = utils.WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return false
		}
		_ = utils.WriteBadRequest(w, "Failed to read request body", nil)
		return false
	}

	if err := dto.Decode(body, schema, out); err != nil {
		HandleServiceError(w, err, logger)
		return false
	}
	return true
}

// pathUUID parses the named chi URL parameter
func pathUUID(w http.ResponseWriter, r *http.Request, name string, logger *zap.Logger) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, name), name)
	if err != nil {
		HandleServiceError(w, err, logger)
		return uuid.Nil, false
	}
	return id, true
}

// actor returns the local user id of the authenticated principal.
// A missing principal means the route was mounted without RequireAuth.
func actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id := middleware.GetUserIDFromContext(r.Context())
	if id == uuid.Nil {
		_ = utils.WriteUnauthorized(w, "")
		return uuid.Nil, false
	}
	return id, true
}

// parsePage reads limit and offset query parameters. Bounds are applied by the repositories.
func parsePage(r *http.Request) (repositories.Page, error) {
	var page repositories.Page
	var fieldErrs []utils.FieldError

	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fieldErrs = append(fieldErrs, utils.FieldError{Field: "limit", Code: utils.CodeType, Message: "must be a non-negative integer"})
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			fieldErrs = append(fieldErrs, utils.FieldError{Field: "offset", Code: utils.CodeType, Message: "must be a non-negative integer"})
		}
		page.Offset = n
	}

	if len(fieldErrs) > 0 {
		return repositories.Page{}, utils.NewFieldValidationError(fieldErrs)
	}
	return page, nil
}
