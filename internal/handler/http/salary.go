package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/blackhole-hr/attendance-backend-go/internal/domain/salary"
	"github.com/blackhole-hr/attendance-backend-go/internal/handler/http/response"
)

type SalaryHandler interface {
	SetRate(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	ListConfirmed(w http.ResponseWriter, r *http.Request)
	UpdateConfirmed(w http.ResponseWriter, r *http.Request)
	DeleteConfirmed(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	Unfinalize(w http.ResponseWriter, r *http.Request)
	DeleteFinalized(w http.ResponseWriter, r *http.Request)
	ListFinalized(w http.ResponseWriter, r *http.Request)
	SetPaid(w http.ResponseWriter, r *http.Request)
	ListPaid(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.Service
}

func NewSalaryHandler(salaryService salary.Service) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

func (h *salaryHandlerImpl) SetRate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req salary.SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.salaryService.SetHourRate(r.Context(), employeeID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Hourly rate saved", nil)
}

func (h *salaryHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	var req salary.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.Confirm(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salaries confirmed", result)
}

func (h *salaryHandlerImpl) ListConfirmed(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.Confirmed(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) UpdateConfirmed(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "Index must be an integer", nil)
		return
	}

	var req salary.UpdateConfirmedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.UpdateConfirmed(r.Context(), index, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Confirmed salary updated", result)
}

func (h *salaryHandlerImpl) DeleteConfirmed(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "Index must be an integer", nil)
		return
	}

	if err := h.salaryService.DeleteConfirmed(r.Context(), index); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Confirmed salary deleted", nil)
}

func (h *salaryHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	var req salary.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.salaryService.Finalize(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month finalized", result)
}

func (h *salaryHandlerImpl) Unfinalize(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := monthKeyParam(r)
	if !ok {
		response.BadRequest(w, "Month key is required", nil)
		return
	}

	result, err := h.salaryService.Unfinalize(r.Context(), monthKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Month unfinalized", result)
}

func (h *salaryHandlerImpl) DeleteFinalized(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := monthKeyParam(r)
	if !ok {
		response.BadRequest(w, "Month key is required", nil)
		return
	}

	if err := h.salaryService.DeleteBucket(r.Context(), monthKey); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Finalized month deleted", nil)
}

func (h *salaryHandlerImpl) ListFinalized(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.Finalized(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) SetPaid(w http.ResponseWriter, r *http.Request) {
	monthKey, ok := monthKeyParam(r)
	if !ok {
		response.BadRequest(w, "Month key is required", nil)
		return
	}

	var req salary.SetPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.salaryService.SetPaid(r.Context(), monthKey, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Paid employees saved", nil)
}

func (h *salaryHandlerImpl) ListPaid(w http.ResponseWriter, r *http.Request) {
	result, err := h.salaryService.Paid(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// monthKeyParam decodes the month-key path segment; keys like "June 2024"
// arrive percent-encoded.
func monthKeyParam(r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "monthKey")
	if raw == "" {
		return "", false
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw, true
	}
	return decoded, true
}
