package http

import (
	"net/http"
	"time"

	"utility-bill-splitter/internal/domain"
)

type notificationRequest struct {
	UserID  int32  `json:"userId"`
	Message string `json:"message"`
}

func writeNotifications(w http.ResponseWriter, notes []domain.Notification, total int32) {
	now := time.Now()
	views := make([]notificationView, len(notes))
	for i := range notes {
		views[i] = MapNotificationToView(&notes[i], now)
	}
	setTotalCount(w, total)
	writeJSON(w, http.StatusOK, views)
}

func (h *handler) listAllNotifications(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	notes, total, err := h.svc.Notifications.ListAll(r.Context(), page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeNotifications(w, notes, total)
}

func (h *handler) listUserNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	page, size := pageParams(r)
	notes, total, err := h.svc.Notifications.ListForUser(r.Context(), userID, page, size)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeNotifications(w, notes, total)
}

func (h *handler) countUnread(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	count, err := h.svc.Notifications.CountUnread(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int32{"unreadCount": count})
}

func (h *handler) createNotification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := h.validator.decode(r, schemaNotificationCreate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	note, err := h.svc.Notifications.NotifyUser(r.Context(), req.UserID, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapNotificationToView(note, time.Now()))
}

// markNotificationRead only touches the caller's own notifications.
func (h *handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	callerID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Notifications.MarkAsRead(r.Context(), callerID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Notification marked as read."})
}
