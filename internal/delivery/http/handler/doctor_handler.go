package handler

import (
	"errors"
	"net/http"

	"doctor-search/internal/converter"
	"doctor-search/internal/usecase"
	"doctor-search/pkg/response"

	"github.com/sirupsen/logrus"
)

// FeedUnavailableMessage is shown whenever the doctor feed could not be loaded.
const FeedUnavailableMessage = "There was a problem fetching doctor data. Please try again."

type DoctorHandler struct {
	log           *logrus.Logger
	searchUsecase usecase.DoctorSearchUsecase
}

func NewDoctorHandler(log *logrus.Logger, searchUsecase usecase.DoctorSearchUsecase) *DoctorHandler {
	return &DoctorHandler{
		log:           log,
		searchUsecase: searchUsecase,
	}
}

// SearchDoctors reads the filter state from the request query string, so a
// shared or reloaded URL yields the same list. Malformed pairs are dropped and
// the rest of the query still applies.
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	state, err := converter.FilterStateFromQuery(r.URL.RawQuery)
	if err != nil {
		h.log.Warnf("Ignoring malformed filter query %q: %+v", r.URL.RawQuery, err)
	}

	result, err := h.searchUsecase.SearchDoctors(r.Context(), state)
	if err != nil {
		h.writeUsecaseError(w, err, "Failed to search doctors")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", result, &response.Meta{Total: result.Total})
}

func (h *DoctorHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")

	suggestions, err := h.searchUsecase.GetSuggestions(r.Context(), term)
	if err != nil {
		h.writeUsecaseError(w, err, "Failed to get suggestions")
		return
	}

	response.Success(w, http.StatusOK, "Suggestions retrieved successfully", suggestions)
}

func (h *DoctorHandler) GetSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.searchUsecase.GetSpecialties(r.Context())
	if err != nil {
		h.writeUsecaseError(w, err, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *DoctorHandler) GetFeedStatus(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Feed status retrieved successfully", h.searchUsecase.GetFeedStatus(r.Context()))
}

func (h *DoctorHandler) RefreshDoctors(w http.ResponseWriter, r *http.Request) {
	status, err := h.searchUsecase.RefreshDoctors(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrFeedUnavailable) {
			response.ServiceUnavailable(w, FeedUnavailableMessage, status)
			return
		}
		h.log.Errorf("Failed to refresh doctors: %+v", err)
		response.InternalServerError(w, "Failed to refresh doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors refreshed successfully", status)
}

func (h *DoctorHandler) writeUsecaseError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, usecase.ErrFeedUnavailable) {
		response.ServiceUnavailable(w, FeedUnavailableMessage, nil)
		return
	}
	h.log.Errorf("%s: %+v", fallback, err)
	response.InternalServerError(w, fallback)
}
