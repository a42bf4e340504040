package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"bookservice/internal/httpx"

	"github.com/google/uuid"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

// Register mounts the book routes on mux using method patterns.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("GET /books", h.FindAll)
	mux.HandleFunc("GET /books/{id}", h.FindByID)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

// Create handles POST /books.
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := bindRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/books/"+created.ID.String())
	httpx.JSON(w, http.StatusCreated, created)
}

// FindAll handles GET /books.
func (h *HTTPHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.FindAll(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, books)
}

// FindByID handles GET /books/{id}.
func (h *HTTPHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	b, err := h.svc.FindByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Update handles PUT /books/{id}. PUT is a full replace of the four
// non-id fields.
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	req, err := bindRequest(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /books/{id}.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}
	httpx.JSONNoContent(w)
}

// pathID parses the {id} path parameter as a UUID.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return uuid.Nil, &httpx.MissingParamError{Name: "id"}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &httpx.MalformedParamError{Name: "id", Value: raw}
	}
	return id, nil
}

// bindRequest decodes and validates the book payload.
func bindRequest(r *http.Request) (BookRequest, error) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return BookRequest{}, &malformedBodyError{cause: err}
	}
	if fields := httpx.ValidateStruct(req); fields != nil {
		return BookRequest{}, &httpx.ValidationFailedError{Fields: fields}
	}
	return req, nil
}

type malformedBodyError struct {
	cause error
}

func (e *malformedBodyError) Error() string {
	return "Malformed request body"
}

// respondError is the single place where errors become HTTP responses.
// Unexpected errors are logged here and surface only an error-kind tag.
func (h *HTTPHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *NotFoundError
		duplicate  *DuplicateISBNError
		malformed  *httpx.MalformedParamError
		missing    *httpx.MissingParamError
		validation *httpx.ValidationFailedError
		badBody    *malformedBodyError
	)
	switch {
	case errors.As(err, &notFound):
		httpx.JSONError(w, http.StatusNotFound, notFound.Error(), httpx.Extra{})
	case errors.As(err, &duplicate):
		httpx.JSONError(w, http.StatusConflict, duplicate.Error(), httpx.Extra{})
	case errors.As(err, &malformed):
		httpx.JSONError(w, http.StatusBadRequest, malformed.Error(), httpx.Extra{Value: malformed.Value})
	case errors.As(err, &missing):
		httpx.JSONError(w, http.StatusBadRequest, missing.Error(), httpx.Extra{})
	case errors.As(err, &validation):
		httpx.JSONError(w, http.StatusBadRequest, validation.Error(), httpx.Extra{Fields: validation.Fields})
	case errors.As(err, &badBody):
		httpx.JSONError(w, http.StatusBadRequest, badBody.Error(), httpx.Extra{Detail: fmt.Sprintf("%T", badBody.cause)})
	default:
		log.Printf("unhandled error: request_id=%s method=%s path=%s error=%v",
			httpx.RequestIDFrom(r), r.Method, r.URL.Path, err)
		httpx.JSONError(w, http.StatusInternalServerError, "Unexpected error", httpx.Extra{Detail: fmt.Sprintf("%T", err)})
	}
}
