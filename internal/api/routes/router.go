package routes

import (
	"net/http"

	"github.com/healthconnect/navigator-api/internal/api/handlers"
	"github.com/healthconnect/navigator-api/internal/api/middleware"
	"github.com/healthconnect/navigator-api/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	facilityHandler    *handlers.FacilityHandler
	geolocationHandler *handlers.GeolocationHandler
	triageHandler      *handlers.TriageHandler
	contactHandler     *handlers.ContactHandler
	alertHandler       *handlers.AlertHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	facilityHandler *handlers.FacilityHandler,
	geolocationHandler *handlers.GeolocationHandler,
	triageHandler *handlers.TriageHandler,
	contactHandler *handlers.ContactHandler,
	alertHandler *handlers.AlertHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		facilityHandler:    facilityHandler,
		geolocationHandler: geolocationHandler,
		triageHandler:      triageHandler,
		contactHandler:     contactHandler,
		alertHandler:       alertHandler,
		cacheMiddleware:    cacheMiddleware,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Facility discovery
	r.mux.HandleFunc("GET /api/facilities/nearby", r.facilityHandler.SearchNearby)

	// Geocoding
	r.mux.HandleFunc("GET /api/geocode", r.geolocationHandler.Geocode)
	r.mux.HandleFunc("GET /api/reverse-geocode", r.geolocationHandler.ReverseGeocode)

	// Symptom triage
	if r.triageHandler != nil {
		r.mux.HandleFunc("POST /api/triage/sessions", r.triageHandler.StartSession)
		r.mux.HandleFunc("GET /api/triage/sessions/{id}", r.triageHandler.GetSession)
		r.mux.HandleFunc("POST /api/triage/sessions/{id}/messages", r.triageHandler.SendMessage)
	}

	// Emergency contacts and alerts
	if r.contactHandler != nil {
		r.mux.HandleFunc("POST /api/contacts", r.contactHandler.CreateContact)
		r.mux.HandleFunc("GET /api/contacts", r.contactHandler.ListContacts)
		r.mux.HandleFunc("DELETE /api/contacts/{id}", r.contactHandler.DeleteContact)
	}
	if r.alertHandler != nil {
		r.mux.HandleFunc("POST /api/alerts", r.alertHandler.DispatchAlert)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
