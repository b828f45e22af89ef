package http

import (
	"encoding/json"
	"net/http"

	"github.com/k3guard/attendance-backend-go/internal/domain/shift"
	"github.com/k3guard/attendance-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	GetWindowPolicy(w http.ResponseWriter, r *http.Request)
	UpdateWindowPolicy(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	policies shift.PolicyRepository
}

func NewSettingsHandler(policies shift.PolicyRepository) SettingsHandler {
	return &settingsHandlerImpl{policies: policies}
}

// GetWindowPolicy implements SettingsHandler.
func (h *settingsHandlerImpl) GetWindowPolicy(w http.ResponseWriter, r *http.Request) {
	policy, err := h.policies.GetWindowPolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shift.ToWindowPolicyResponse(policy))
}

// UpdateWindowPolicy implements SettingsHandler.
func (h *settingsHandlerImpl) UpdateWindowPolicy(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateWindowPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	policy, err := req.ToPolicy()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.policies.UpdateWindowPolicy(r.Context(), policy); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance window policy updated", shift.ToWindowPolicyResponse(policy))
}
