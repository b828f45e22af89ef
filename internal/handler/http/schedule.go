package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/k3guard/attendance-backend-go/internal/domain/employee"
	"github.com/k3guard/attendance-backend-go/internal/handler/http/response"
	"github.com/k3guard/attendance-backend-go/internal/pkg/validator"
	"github.com/k3guard/attendance-backend-go/internal/service/schedule"
)

type ScheduleHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	projector *schedule.Projector
	employees employee.EmployeeRepository
	location  *time.Location
}

func NewScheduleHandler(projector *schedule.Projector, employees employee.EmployeeRepository, location *time.Location) ScheduleHandler {
	return &scheduleHandlerImpl{
		projector: projector,
		employees: employees,
		location:  location,
	}
}

// Monthly implements ScheduleHandler. Employees see their own month; an
// administrator may pass ?nik= to see someone else's.
func (h *scheduleHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	nik, _ := claims["nik"].(string)
	role, _ := claims["role"].(string)

	if target := r.URL.Query().Get("nik"); target != "" && target != nik {
		if role != string(employee.RoleAdmin) {
			response.Forbidden(w, "Administrator privilege required to view another employee's schedule")
			return
		}
		nik = target
	}

	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil || !validator.IsValidYear(year) || !validator.IsValidMonth(month) {
		response.BadRequest(w, "year and month query parameters are required", nil)
		return
	}

	emp, err := h.employees.GetByNIK(r.Context(), nik)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.projector.ProjectMonth(r.Context(), emp, year, time.Month(month), h.location)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, view)
}
