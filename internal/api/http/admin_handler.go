package http

import (
	"net/http"

	"utility-bill-splitter/internal/domain"
)

func (h *handler) adminListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Admin.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// adminUpdateRole takes the new role from the "role" query parameter.
func (h *handler) adminUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	adminID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	role := domain.UserRole(r.URL.Query().Get("role"))
	if _, err := h.svc.Admin.UpdateRole(r.Context(), adminID, id, role); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Role updated."})
}

func (h *handler) adminDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	adminID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Admin.DeleteUser(r.Context(), adminID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "User deleted."})
}

func (h *handler) adminListLogs(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	logs, total, err := h.svc.Activity.List(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if logs == nil {
		logs = []domain.ActivityLog{}
	}
	setTotalCount(w, total)
	writeJSON(w, http.StatusOK, logs)
}
