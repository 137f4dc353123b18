package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"cinematicketing/internal/delivery/http/controllers"
	"cinematicketing/internal/delivery/http/middleware"
	"cinematicketing/internal/domain"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth    *controllers.AuthController
	Hall    *controllers.HallController
	Movie   *controllers.MovieController
	Session *controllers.SessionController
	Booking *controllers.BookingController
}

// NewRouter initializes the HTTP router with all application routes.
// Admin routes require a Bearer token; the customer-facing booking routes
// and movies-by-date are public.
func NewRouter(c Controllers, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Halls (admin)
	mux.HandleFunc("GET /halls", auth(c.Hall.List))
	mux.HandleFunc("POST /halls", auth(c.Hall.Create))
	mux.HandleFunc("GET /halls/{hallID}", auth(c.Hall.GetConfig))
	mux.HandleFunc("DELETE /halls/{hallID}", auth(c.Hall.Delete))
	mux.HandleFunc("POST /halls/{hallID}/config", auth(c.Hall.SaveConfig))
	mux.HandleFunc("POST /halls/{hallID}/prices", auth(c.Hall.SetPrices))

	// Sessions (admin)
	mux.HandleFunc("GET /sessions/by-date", auth(c.Session.ListByDate))
	mux.HandleFunc("PUT /sessions", auth(c.Session.BulkUpdate))
	mux.HandleFunc("POST /sessions", auth(c.Session.BulkCreate))
	mux.HandleFunc("DELETE /sessions/{sessionID}", auth(c.Session.Delete))
	mux.HandleFunc("POST /sessions/status", auth(c.Session.SetStatus))
	mux.HandleFunc("POST /sessions/apply", auth(c.Session.Apply))

	// Movies
	mux.HandleFunc("GET /movies", auth(c.Movie.List))
	mux.HandleFunc("POST /movies", auth(c.Movie.Add))
	mux.HandleFunc("GET /movies/by-date", c.Movie.ListByDate)

	// Booking (public)
	mux.HandleFunc("GET /session", c.Booking.GetSession)
	mux.HandleFunc("POST /update-seats", c.Booking.UpdateSeats)

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)
	mux.HandleFunc("POST /auth/refresh-token", c.Auth.Refresh)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
