package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/magscene/magsav/internal/csvimport"
	"github.com/magscene/magsav/internal/entity"
)

type ResponseError struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Fields  []entity.FieldError `json:"fields,omitempty"`
}

func SendErr(ctx context.Context, w http.ResponseWriter, code int, err error, msg string) {
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "api error", "error", err, "code", code)
	} else {
		slog.InfoContext(ctx, "api error", "error", err, "code", code)
	}

	resp := ResponseError{Message: msg, Error: err.Error()}

	var verr *entity.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err = json.NewEncoder(w).Encode(resp)
	if err != nil {
		slog.ErrorContext(ctx, "api error", "error", err, "code", http.StatusInternalServerError)
		return
	}
}

func SendJSON(ctx context.Context, w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.ErrorContext(ctx, "encode response", "error", err)
		return
	}
}

// sendServiceErr maps service errors onto status codes.
func sendServiceErr(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation), errors.Is(err, csvimport.ErrMissingColumns):
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgValidation)
	case errors.Is(err, entity.ErrIncorrectRequestBody):
		SendErr(ctx, w, http.StatusBadRequest, err, entity.ErrMsgBadRequest)
	case errors.Is(err, entity.ErrNotFound):
		SendErr(ctx, w, http.StatusNotFound, err, entity.ErrMsgNotFound)
	case errors.Is(err, entity.ErrConflict), errors.Is(err, entity.ErrAlreadyExists):
		SendErr(ctx, w, http.StatusConflict, err, entity.ErrMsgConflict)
	case errors.Is(err, entity.ErrPhotoStorageDisabled):
		SendErr(ctx, w, http.StatusServiceUnavailable, err, "Stockage des photos indisponible")
	default:
		SendErr(ctx, w, http.StatusInternalServerError, err, entity.ErrMsgInternal)
	}
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", entity.ErrIncorrectRequestBody, chi.URLParam(r, "id"))
	}

	return id, nil
}

func parseFilter(r *http.Request) (entity.ListFilter, error) {
	q := r.URL.Query()

	filter := entity.ListFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	}

	if v := q.Get("clientId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: clientId", entity.ErrIncorrectRequestBody)
		}

		filter.ClientID = &id
	}

	for name, dst := range map[string]*uint64{"limit": &filter.Limit, "page": &filter.Page} {
		v := q.Get(name)
		if v == "" {
			continue
		}

		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("%w: %s", entity.ErrIncorrectRequestBody, name)
		}

		*dst = n
	}

	return filter.Normalize(), nil
}

// decodeFields reads a JSON object keeping numbers exact.
func decodeFields(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var fields map[string]any

	err := dec.Decode(&fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrIncorrectRequestBody, err)
	}

	if fields == nil {
		return nil, fmt.Errorf("%w: body must be a JSON object", entity.ErrIncorrectRequestBody)
	}

	return fields, nil
}
