package handler

import (
	"errors"
	"net/http"

	"doctor-search/internal/delivery/dto"
	"doctor-search/internal/service"
	"doctor-search/internal/usecase"
	"doctor-search/pkg/response"
	"doctor-search/pkg/validator"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

type FilterHandler struct {
	log           *logrus.Logger
	searchUsecase usecase.DoctorSearchUsecase
	validator     *validator.CustomValidator
}

func NewFilterHandler(log *logrus.Logger, searchUsecase usecase.DoctorSearchUsecase, validator *validator.CustomValidator) *FilterHandler {
	return &FilterHandler{
		log:           log,
		searchUsecase: searchUsecase,
		validator:     validator,
	}
}

// ApplyAction mutates the filter state carried in the request and returns the
// new state, its query string, and the doctors it selects.
func (h *FilterHandler) ApplyAction(w http.ResponseWriter, r *http.Request) {
	var req dto.FilterActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.searchUsecase.ApplyFilterAction(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidFilterAction):
			response.BadRequest(w, "Unknown filter action")
		case errors.Is(err, usecase.ErrInvalidFilterValue):
			response.BadRequest(w, "Invalid filter value")
		case errors.Is(err, service.ErrUnknownFilterKind):
			response.BadRequest(w, "Unknown filter kind")
		case errors.Is(err, usecase.ErrFeedUnavailable):
			response.ServiceUnavailable(w, FeedUnavailableMessage, nil)
		default:
			h.log.Errorf("Failed to apply filter action: %+v", err)
			response.InternalServerError(w, "Failed to apply filter action")
		}
		return
	}

	response.Success(w, http.StatusOK, "Filters updated successfully", result)
}
