package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/service"
	"utility-bill-splitter/internal/utils"
)

type billRequest struct {
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        string          `json:"dueDate"`
	UtilityType    string          `json:"utilityType"`
	Description    *string         `json:"description"`
	GroupID        int32           `json:"groupId"`
	PayerID        int32           `json:"payerId"`
	ParticipantIDs []int32         `json:"participantIds"`
}

func parseDueDate(s string) (time.Time, error) {
	d, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dueDate: %v", domain.ErrInvalidInput, err)
	}
	return d.Time(), nil
}

func (h *handler) createBill(w http.ResponseWriter, r *http.Request) {
	callerID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req billRequest
	if err := h.validator.decode(r, schemaBillCreate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	bill, err := h.svc.Bills.CreateBill(r.Context(), callerID, service.BillInput{
		Title:          req.Title,
		Amount:         req.Amount,
		DueDate:        due,
		UtilityType:    req.UtilityType,
		Description:    deref(req.Description),
		GroupID:        req.GroupID,
		PayerID:        req.PayerID,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapBillViewToResponse(bill))
}

func (h *handler) listBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.Bills.ListBills(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeBillViews(w, bills)
}

func (h *handler) listGroupBills(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	bills, err := h.svc.Bills.ListGroupBills(r.Context(), groupID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeBillViews(w, bills)
}

func writeBillViews(w http.ResponseWriter, bills []service.BillView) {
	views := make([]billView, len(bills))
	for i := range bills {
		views[i] = MapBillViewToResponse(&bills[i])
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *handler) getBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	bill, err := h.svc.Bills.GetBill(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapBillViewToResponse(bill))
}

// updateBill changes descriptive fields only; amount and shares are fixed.
func (h *handler) updateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req billRequest
	if err := h.validator.decode(r, schemaBillUpdate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := h.svc.Bills.UpdateBill(r.Context(), id, service.BillUpdate{
		Title:       req.Title,
		DueDate:     due,
		UtilityType: req.UtilityType,
		Description: deref(req.Description),
	}); err != nil {
		writeError(w, r, err)
		return
	}
	bill, err := h.svc.Bills.GetBill(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapBillViewToResponse(bill))
}

func (h *handler) deleteBill(w http.ResponseWriter, r *http.Request) {
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
	if err := h.svc.Bills.DeleteBill(r.Context(), callerID, id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Bill deleted successfully"})
}

func (h *handler) markBillPaid(w http.ResponseWriter, r *http.Request) {
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
	bill, err := h.svc.Bills.MarkBillFullyPaid(r.Context(), callerID, getRoleFromContext(r.Context()), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapBillViewToResponse(bill))
}
