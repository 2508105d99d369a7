package httpserver

import (
	"net/http"
)

// Routes aggregates handlers for HTTP server.
type Routes struct {
	Health         http.HandlerFunc
	Stations       http.HandlerFunc
	StationsFeed   http.HandlerFunc
	Register       http.HandlerFunc
	Login          http.HandlerFunc
	Logout         http.HandlerFunc
	Profile        http.HandlerFunc
	UpdateProfile  http.HandlerFunc
	Favorites      http.HandlerFunc
	ToggleFavorite http.HandlerFunc
	History        http.HandlerFunc
	Metrics        http.Handler
}

// NewRouter wires all HTTP routes. Nil handlers are skipped.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()

	handle(mux, "/health", http.MethodGet, routes.Health)
	handle(mux, "/api/stations", http.MethodGet, routes.Stations)
	handle(mux, "/api/stations/ws", http.MethodGet, routes.StationsFeed)
	handle(mux, "/api/auth/register", http.MethodPost, routes.Register)
	handle(mux, "/api/auth/login", http.MethodPost, routes.Login)
	handle(mux, "/api/auth/logout", http.MethodPost, routes.Logout)
	handle(mux, "/api/profile", http.MethodGet, routes.Profile)
	handle(mux, "/api/profile/update", http.MethodPost, routes.UpdateProfile)
	handle(mux, "/api/favorites", http.MethodGet, routes.Favorites)
	handle(mux, "/api/favorites/toggle", http.MethodPost, routes.ToggleFavorite)
	handle(mux, "/api/history", http.MethodGet, routes.History)

	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}

	return mux
}

func handle(mux *http.ServeMux, path, expected string, handler http.HandlerFunc) {
	if handler == nil {
		return
	}
	mux.Handle(path, method(expected, handler))
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
