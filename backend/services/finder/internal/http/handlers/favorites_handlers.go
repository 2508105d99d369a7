package handlers

import (
	"net/http"

	"echargefinder/backend/services/finder/internal/service"
)

// NewFavoritesHandler returns GET /api/favorites handler.
func NewFavoritesHandler(authService *service.AuthService, profileService *service.ProfileService) http.HandlerFunc {
	type response struct {
		IDs      []int64       `json:"ids"`
		Stations []StationView `json:"stations"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := authService.CurrentSession(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		ids, err := profileService.Favorites(r.Context(), sess)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		stations, err := profileService.ListFavorites(r.Context(), sess)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, response{IDs: ids, Stations: stationViews(stations)})
	}
}

// NewToggleFavoriteHandler returns POST /api/favorites/toggle handler.
func NewToggleFavoriteHandler(authService *service.AuthService, profileService *service.ProfileService) http.HandlerFunc {
	type request struct {
		StationID *int64 `json:"station_id"`
	}
	type response struct {
		StationID int64 `json:"station_id"`
		Favorite  bool  `json:"favorite"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := authService.CurrentSession(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		var req request
		if !decodeJSON(w, r, &req) {
			return
		}
		if req.StationID == nil {
			writeError(w, http.StatusBadRequest, "station_id is required")
			return
		}

		favorite, err := profileService.ToggleFavorite(r.Context(), sess, *req.StationID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, response{StationID: *req.StationID, Favorite: favorite})
	}
}

// NewHistoryHandler returns GET /api/history handler.
func NewHistoryHandler(authService *service.AuthService, profileService *service.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := authService.CurrentSession(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"history": profileService.History()})
	}
}
