package http

import (
	"net/http"

	"doctor-search/internal/delivery/http/handler"
	"doctor-search/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router            *mux.Router
	doctorHandler     *handler.DoctorHandler
	filterHandler     *handler.FilterHandler
	requestMiddleware *middleware.RequestMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	filterHandler *handler.FilterHandler,
	requestMiddleware *middleware.RequestMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		doctorHandler:     doctorHandler,
		filterHandler:     filterHandler,
		requestMiddleware: requestMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctor listing
	api.HandleFunc("/doctors", r.doctorHandler.SearchDoctors).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/doctors/suggestions", r.doctorHandler.GetSuggestions).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/doctors/specialties", r.doctorHandler.GetSpecialties).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/doctors/status", r.doctorHandler.GetFeedStatus).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/doctors/refresh", r.doctorHandler.RefreshDoctors).Methods(http.MethodPost, http.MethodOptions)

	// Filter state
	api.HandleFunc("/filters/actions", r.filterHandler.ApplyAction).Methods(http.MethodPost, http.MethodOptions)

	r.router.Use(r.requestMiddleware.AssignRequestID)
	r.router.Use(r.requestMiddleware.Log)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
