package http

import (
	"net/http"

	"github.com/cmlabs-hris/geoshift-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/geoshift-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	UpdateLocation(w http.ResponseWriter, r *http.Request)
}

type companyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &companyHandlerImpl{companyService: companyService}
}

// Register implements CompanyHandler.
func (h *companyHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req company.RegisterCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AdminID = middleware.ClaimsFromContext(r.Context()).UserID

	result, err := h.companyService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company registered successfully", result)
}

// GetMy implements CompanyHandler.
func (h *companyHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	result, err := h.companyService.GetMy(r.Context(), middleware.ClaimsFromContext(r.Context()).UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateLocation implements CompanyHandler.
func (h *companyHandlerImpl) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.AdminID = middleware.ClaimsFromContext(r.Context()).UserID

	result, err := h.companyService.UpdateLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company location updated", result)
}
