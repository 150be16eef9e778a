package http

import (
	"fmt"
	"net/http"

	"utility-bill-splitter/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  int32  `json:"userId"`
	Role    string `json:"role"`
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := h.validator.decode(r, schemaRegister, &req); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string       `json:"message"`
		User    *domain.User `json:"user"`
	}{Message: "User registered successfully.", User: user})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.validator.decode(r, schemaLogin, &req); err != nil {
		writeError(w, r, err)
		return
	}
	token, user, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful.",
		Token:   token,
		UserID:  user.ID,
		Role:    string(user.Role),
	})
}

// adminLogin is login restricted to accounts holding the Admin role.
func (h *handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.validator.decode(r, schemaLogin, &req); err != nil {
		writeError(w, r, err)
		return
	}
	token, user, err := h.svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err == nil && user.Role != domain.UserRoleAdmin {
		err = fmt.Errorf("%w: Invalid credentials or not an admin.", domain.ErrInvalidCredentials)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful.",
		Token:   token,
		UserID:  user.ID,
		Role:    string(user.Role),
	})
}

func (h *handler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	viewerID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Users.GetProfile(r.Context(), viewerID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
