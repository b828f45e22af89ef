package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/shift"
	"github.com/k3guard/attendance-backend-go/internal/handler/http/response"
)

type ShiftHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	catalog shift.CatalogRepository
}

func NewShiftHandler(catalog shift.CatalogRepository) ShiftHandler {
	return &shiftHandlerImpl{catalog: catalog}
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	defs, err := h.catalog.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]shift.DefinitionResponse, 0, len(defs))
	for _, def := range defs {
		resp = append(resp, shift.ToDefinitionResponse(def))
	}
	response.Success(w, resp)
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	def, err := h.catalog.GetByCode(r.Context(), code)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shift.ToDefinitionResponse(def))
}
