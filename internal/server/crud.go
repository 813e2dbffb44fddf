package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Tomlord1122/portfolio-backend/internal/service"
	"github.com/Tomlord1122/portfolio-backend/internal/validate"
)

type pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// envelope wraps every JSON body returned by the /api routes.
type envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Pagination *pagination       `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
	Error      string            `json:"error,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// crudHandlers adapts one service to the /api routes. label names one entity
// in response messages, plural names a page of them.
type crudHandlers[T any, C service.CreateRequest[T], U service.UpdateRequest] struct {
	svc    *service.Service[T, C, U]
	label  string
	plural string
	log    *zap.Logger
}

func mountCRUD[T any, C service.CreateRequest[T], U service.UpdateRequest](r chi.Router, svc *service.Service[T, C, U], label, plural string, log *zap.Logger) {
	h := &crudHandlers[T, C, U]{svc: svc, label: label, plural: plural, log: log.Named(svc.Name())}

	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *crudHandlers[T, C, U]) list(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), validate.PageFromQuery(r.URL.Query()))
	if err != nil {
		h.respondWithServiceError(w, err, "retrieve", h.plural)
		return
	}

	respondWithJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    res.Items,
		Pagination: &pagination{
			Limit:  res.Limit,
			Offset: res.Offset,
			Total:  res.Total,
		},
	})
}

func (h *crudHandlers[T, C, U]) create(w http.ResponseWriter, r *http.Request) {
	var req C
	if !decodeJSONBody(w, r, &req) {
		return
	}

	row, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.respondWithServiceError(w, err, "create", h.label)
		return
	}

	respondWithJSON(w, http.StatusCreated, envelope{
		Success: true,
		Data:    row,
		Message: fmt.Sprintf("%s created", capitalize(h.label)),
	})
}

func (h *crudHandlers[T, C, U]) get(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithServiceError(w, err, "retrieve", h.label)
		return
	}

	respondWithJSON(w, http.StatusOK, envelope{Success: true, Data: row})
}

func (h *crudHandlers[T, C, U]) update(w http.ResponseWriter, r *http.Request) {
	var req U
	if !decodeJSONBody(w, r, &req) {
		return
	}

	row, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondWithServiceError(w, err, "update", h.label)
		return
	}

	respondWithJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    row,
		Message: fmt.Sprintf("%s updated", capitalize(h.label)),
	})
}

func (h *crudHandlers[T, C, U]) remove(w http.ResponseWriter, r *http.Request) {
	row, err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithServiceError(w, err, "delete", h.label)
		return
	}

	respondWithJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    row,
		Message: fmt.Sprintf("%s deleted", capitalize(h.label)),
	})
}

// respondWithServiceError maps the service error taxonomy onto status codes.
// Storage failures never expose their cause; the service has already logged
// them.
func (h *crudHandlers[T, C, U]) respondWithServiceError(w http.ResponseWriter, err error, op, noun string) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		respondWithJSON(w, http.StatusBadRequest, envelope{
			Error:   "Invalid input",
			Details: verr.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("%s not found", capitalize(h.label)))
	default:
		h.log.Debug("service call failed", zap.String("op", op), zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s %s", op, noun))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
