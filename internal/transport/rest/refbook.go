package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/refbook-backend/internal/domain"
	refbooksvc "github.com/heartmarshall/refbook-backend/internal/service/refbook"
	"github.com/heartmarshall/refbook-backend/pkg/ctxutil"
)

// Client-facing messages.
const (
	msgInvalidDate    = "Неверный формат даты. Используйте ГГГГ-ММ-ДД."
	msgMissingParams  = "Параметры code и value обязательны."
	msgInternalError  = "internal server error"
	msgNotFound       = "not found"
	msgMethodNotAllow = "method not allowed"
)

type refbookService interface {
	ListRefbooks(ctx context.Context, date string) ([]domain.Refbook, error)
	ListElements(ctx context.Context, refbookID int64, version string) ([]domain.RefbookElement, error)
	CheckElement(ctx context.Context, input refbooksvc.CheckElementInput) (bool, error)
}

// RefbookHandler serves the read-only refbook endpoints.
type RefbookHandler struct {
	svc refbookService
	log *slog.Logger
}

// NewRefbookHandler creates a RefbookHandler.
func NewRefbookHandler(svc refbookService, logger *slog.Logger) *RefbookHandler {
	return &RefbookHandler{svc: svc, log: logger.With("handler", "refbook")}
}

type refbookItem struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type refbooksResponse struct {
	Refbooks []refbookItem `json:"refbooks"`
}

type elementItem struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

type elementsResponse struct {
	Elements []elementItem `json:"elements"`
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

// List handles GET /refbooks/?date=YYYY-MM-DD.
func (h *RefbookHandler) List(w http.ResponseWriter, r *http.Request) {
	refbooks, err := h.svc.ListRefbooks(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, msgInvalidDate)
			return
		}
		h.internalError(w, r, "list refbooks", err)
		return
	}

	resp := refbooksResponse{Refbooks: make([]refbookItem, len(refbooks))}
	for i, rb := range refbooks {
		resp.Refbooks[i] = refbookItem{ID: rb.ID, Code: rb.Code, Name: rb.Name}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Elements handles GET /refbooks/{id}/elements/?version=.
func (h *RefbookHandler) Elements(w http.ResponseWriter, r *http.Request) {
	id, ok := refbookID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	elements, err := h.svc.ListElements(r.Context(), id, r.URL.Query().Get("version"))
	if err != nil {
		h.internalError(w, r, "list elements", err)
		return
	}

	resp := elementsResponse{Elements: make([]elementItem, len(elements))}
	for i, e := range elements {
		resp.Elements[i] = elementItem{Code: e.Code, Value: e.Value}
	}
	writeJSON(w, http.StatusOK, resp)
}

// CheckElement handles GET /refbooks/{id}/check-element/?code=&value=&version=.
// When no version resolves the answer is 404 with {"exists": false}.
func (h *RefbookHandler) CheckElement(w http.ResponseWriter, r *http.Request) {
	id, ok := refbookID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	q := r.URL.Query()
	exists, err := h.svc.CheckElement(r.Context(), refbooksvc.CheckElementInput{
		RefbookID: id,
		Code:      q.Get("code"),
		Value:     q.Get("value"),
		Version:   q.Get("version"),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusBadRequest, msgMissingParams)
		case errors.Is(err, domain.ErrNotFound):
			writeJSON(w, http.StatusNotFound, existsResponse{Exists: false})
		default:
			h.internalError(w, r, "check element", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, existsResponse{Exists: exists})
}

func (h *RefbookHandler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if !errors.Is(err, context.Canceled) {
		h.log.ErrorContext(r.Context(), op+" failed",
			slog.String("error", err.Error()),
			ctxutil.RequestIDAttr(r.Context()),
		)
	}
	writeError(w, http.StatusInternalServerError, msgInternalError)
}

// refbookID reads the {id} path segment. The router only matches digits, so
// a failure here means the value overflows int64.
func refbookID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
