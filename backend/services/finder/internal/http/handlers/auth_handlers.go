package handlers

import (
	"net/http"

	"echargefinder/backend/services/finder/internal/models"
	"echargefinder/backend/services/finder/internal/service"
)

// LogoutRedirect is the page clients return to after logging out.
const LogoutRedirect = "index.html"

// NewRegisterHandler returns POST /api/auth/register handler.
func NewRegisterHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	type response struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := authService.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, response{Name: user.Name, Email: user.Email})
	}
}

// NewLoginHandler returns POST /api/auth/login handler.
func NewLoginHandler(authService *service.AuthService) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if !decodeJSON(w, r, &req) {
			return
		}

		sess, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sess)
	}
}

// NewLogoutHandler returns POST /api/auth/logout handler.
func NewLogoutHandler(authService *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := authService.Logout(r.Context()); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"redirect": LogoutRedirect})
	}
}

// NewProfileHandler returns GET /api/profile handler.
func NewProfileHandler(authService *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := authService.CurrentSession(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sess)
	}
}

// NewUpdateProfileHandler returns POST /api/profile/update handler.
func NewUpdateProfileHandler(authService *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := authService.CurrentSession(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		var upd models.ProfileUpdate
		if !decodeJSON(w, r, &upd) {
			return
		}
		if upd.Empty() {
			writeError(w, http.StatusBadRequest, "nothing to update")
			return
		}

		updated, err := authService.UpdateProfile(r.Context(), sess, upd)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
