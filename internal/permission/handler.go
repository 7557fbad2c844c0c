package permission

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aditirto/identity-service/internal/transport"
	"github.com/aditirto/identity-service/pkg/logger"
)

type ServiceAPI interface {
	List(filter Filter) ([]*Permission, error)
	UpdateStatus(filter Filter, isActive bool) ([]*Permission, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// List handles GET /permission/list with optional role/action/resource query
// filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	perms, err := h.Service.List(filter)
	if err != nil {
		h.Logger.Error("failed to list permissions", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, perms)
}

// Update handles PATCH /permission: toggles is_active on every row matching
// the query filter.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r.URL.Query())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var dto StatusUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.IsActive == nil {
		h.WriteError(w, http.StatusBadRequest, "is_active is required")
		return
	}

	perms, err := h.Service.UpdateStatus(filter, *dto.IsActive)
	if err != nil {
		h.Logger.Error("failed to update permissions", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, perms)
}
