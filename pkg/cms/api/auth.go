package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
)

// adminUserID is the synthetic id of the single shared admin identity.
const adminUserID = "1"

const sessionCookie = "jwt"

type loginRequest struct {
	Password string `json:"password"`
}

// Login validates the shared admin credential and issues a session
// cookie carrying a signed token.
func (s *HTTPServer) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "Missing password")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.cfg.AdminPassword)) != 1 {
		writeError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	claims := map[string]interface{}{"admin_id": adminUserID}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.cfg.SessionTTL)

	_, tokenString, err := s.tokenAuth.Encode(claims)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    tokenString,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.SessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.cfg.Environment != "development",
	})

	render.JSON(w, r, map[string]string{"message": "Logged in"})
}

// Logout expires the session cookie.
func (s *HTTPServer) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	render.JSON(w, r, map[string]string{"message": "Logged out"})
}

// CheckAuth reports whether the caller holds a valid session. Public.
func (s *HTTPServer) CheckAuth(w http.ResponseWriter, r *http.Request) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		render.JSON(w, r, map[string]interface{}{"authenticated": false})
		return
	}

	userID, _ := claims["admin_id"].(string)
	render.JSON(w, r, map[string]interface{}{
		"authenticated": true,
		"user_id":       userID,
	})
}

// Admin is an admin-only probe endpoint.
func (s *HTTPServer) Admin(w http.ResponseWriter, r *http.Request) {
	_, claims, _ := jwtauth.FromContext(r.Context())
	userID, _ := claims["admin_id"].(string)
	render.JSON(w, r, map[string]string{"message": "Hello " + userID})
}
