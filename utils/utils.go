package utils

import (
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"io"
	"net/http"
	"oamanager/datastore"
	"oamanager/models"
	"strconv"
	"strings"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeInternalError = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Resource string `json:"resource,omitempty"`
	ID       string `json:"id,omitempty"`
	TraceID  string `json:"traceId,omitempty"`
}

// ParseJSONBody decodes the request body into dst. An empty body leaves dst
// untouched.
func ParseJSONBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to serialize JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(response)
}

// RespondError writes the error envelope for statusCode. The error itself is
// never echoed to the client; message is.
func RespondError(w http.ResponseWriter, statusCode int, err error, message string) {
	body := ErrorResponse{Message: message}
	switch statusCode {
	case http.StatusBadRequest:
		body.Error = CodeInvalidInput
	case http.StatusUnauthorized:
		body.Error = CodeUnauthorized
		body.Message = ""
	case http.StatusNotFound:
		body.Error = CodeNotFound
	default:
		body.Error = CodeInternalError
		body.Message = ""
		body.TraceID = uuid.NewString()
	}
	RespondJSON(w, statusCode, body)
}

// RespondNotFound names the missing resource and the id that was asked for.
func RespondNotFound(w http.ResponseWriter, resource, id string) {
	RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: CodeNotFound, Resource: resource, ID: id})
}

// HandleStoreError translates a data store error into a response. Anything
// that is neither invalid input nor not found is logged and reported as an
// internal error carrying the request id.
func HandleStoreError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error, resource, id string) {
	switch {
	case errors.Is(err, datastore.ErrInvalidInput):
		RespondError(w, http.StatusBadRequest, err, err.Error())
	case errors.Is(err, datastore.ErrNotFound):
		RespondNotFound(w, resource, id)
	default:
		traceID := middleware.GetReqID(r.Context())
		if traceID == "" {
			traceID = uuid.NewString()
		}
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("traceId", traceID),
			zap.Error(err))
		RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: CodeInternalError, TraceID: traceID})
	}
}

// ParsePagination reads the zero-based page and pageSize query parameters.
// Malformed values fall back to the defaults.
func ParsePagination(r *http.Request) models.Pagination {
	q := r.URL.Query()
	page, _ := strconv.Atoi(strings.TrimSpace(q.Get("page")))
	size, _ := strconv.Atoi(strings.TrimSpace(q.Get("pageSize")))
	return models.Pagination{Page: page, PageSize: size}.Normalize()
}

func QueryBool(r *http.Request, key string) *bool {
	return datastore.ParseBoolean(r.URL.Query().Get(key))
}

func QueryString(r *http.Request, key string) string {
	return datastore.NormalizeString(r.URL.Query().Get(key))
}
