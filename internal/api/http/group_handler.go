package http

import (
	"fmt"
	"net/http"
)

type groupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	MemberIDs   []int32 `json:"memberIds"`
}

type addMemberRequest struct {
	UserID int32 `json:"userId"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// createGroup makes the caller the group's creator.
func (h *handler) createGroup(w http.ResponseWriter, r *http.Request) {
	callerID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req groupRequest
	if err := h.validator.decode(r, schemaGroupCreate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	group, err := h.svc.Groups.CreateGroup(r.Context(), callerID, req.Name, deref(req.Description), req.MemberIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapGroupDetailToView(group))
}

func (h *handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.Groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]groupView, len(groups))
	for i := range groups {
		views[i] = MapGroupDetailToView(&groups[i])
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *handler) getGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	group, err := h.svc.Groups.GetGroup(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapGroupDetailToView(group))
}

func (h *handler) updateGroup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req groupRequest
	if err := h.validator.decode(r, schemaGroupUpdate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.Groups.UpdateGroup(r.Context(), id, req.Name, deref(req.Description)); err != nil {
		writeError(w, r, err)
		return
	}
	group, err := h.svc.Groups.GetGroup(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapGroupDetailToView(group))
}

func (h *handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.Groups.DeleteGroup(r.Context(), callerID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Group deleted successfully"})
}

func (h *handler) addMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req addMemberRequest
	if err := h.validator.decode(r, schemaMemberAdd, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.Groups.AddMember(r.Context(), groupID, req.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("User %d added to group successfully", req.UserID)})
}

// removeMember is authorized against the caller, who must be the group's creator.
func (h *handler) removeMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	memberID, err := pathID(r, "memberId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	callerID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Groups.RemoveMember(r.Context(), groupID, memberID, callerID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Member removed successfully."})
}
