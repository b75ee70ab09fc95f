package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/adiontis/investment-bridge/internal/middleware"
	"github.com/adiontis/investment-bridge/internal/services/auth"
)

// Register handles new account creation
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		h.jsonError(w, "Email, password and name are required", http.StatusBadRequest)
		return
	}
	if len(input.Password) < 8 {
		h.jsonError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Register(auth.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
	})
	if err != nil {
		if err == auth.ErrEmailExists {
			h.jsonError(w, "Email already registered", http.StatusConflict)
			return
		}
		h.jsonError(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	// Auto-login after registration
	result, err := h.authService.Login(auth.LoginInput{
		Email:    user.Email,
		Password: input.Password,
	})
	if err != nil {
		h.jsonError(w, "Registration succeeded, please log in", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, result.Token, result.Expires)
	h.json(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": result.Token,
	})
}

// Login authenticates a user and issues a session token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.jsonError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		h.jsonError(w, "Email and password required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(auth.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		h.jsonError(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	h.setSessionCookie(w, result.Token, result.Expires)
	h.json(w, http.StatusOK, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
	})
}

// Logout invalidates the user's sessions and clears the cookie
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUser(r); user != nil {
		h.authService.Logout(user.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	h.json(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
