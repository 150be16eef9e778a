package http

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type paymentRequest struct {
	UserID      int32           `json:"userId"`
	BillShareID int32           `json:"billShareId"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	Method      *string         `json:"method"`
}

// createPayment pays toward a share owned by userId. Members pay for
// themselves; administrators may record a payment for anyone.
func (h *handler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := h.validator.decode(r, schemaPaymentCreate, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := requireSelfOrAdmin(r.Context(), req.UserID); err != nil {
		writeError(w, r, err)
		return
	}
	receipt, err := h.svc.Payments.ApplyPayment(r.Context(), req.UserID, req.BillShareID, req.AmountPaid, deref(req.Method))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapReceiptToView(receipt))
}

func (h *handler) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.svc.Payments.ListPayments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]paymentView, len(payments))
	for i := range payments {
		views[i] = MapPaymentDetailToView(&payments[i])
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *handler) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	payment, err := h.svc.Payments.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MapPaymentDetailToView(payment))
}
