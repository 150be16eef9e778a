package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"utility-bill-splitter/internal/domain"
	"utility-bill-splitter/internal/security"
	"utility-bill-splitter/internal/service"
)

// Services bundles the application services the API exposes.
type Services struct {
	Auth          service.AuthService
	Users         service.UserService
	Groups        service.GroupService
	Bills         service.BillService
	Payments      service.PaymentService
	Notifications service.NotificationService
	Activity      service.ActivityService
	Admin         service.AdminService
}

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type handler struct {
	svc       Services
	validator *validator
}

// NewRouter builds the API router. Route names key the security table in
// config and label request metrics.
func NewRouter(svc Services, tokens security.TokenManager, db Pinger) (*mux.Router, error) {
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	h := &handler{svc: svc, validator: v}

	r := mux.NewRouter()
	r.Use(recoverMiddleware, requestIDMiddleware, observeMiddleware, NewAuthMiddleware(tokens).Handler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "Route not found"})
	})

	r.HandleFunc("/health", healthHandler(db)).Methods(http.MethodGet).Name("Health")
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("Metrics")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost).Name("Register")
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost).Name("Login")
	api.HandleFunc("/auth/users", h.listUsers).Methods(http.MethodGet).Name("ListUsers")
	api.HandleFunc("/auth/{id:[0-9]+}", h.getProfile).Methods(http.MethodGet).Name("GetProfile")

	api.HandleFunc("/groups", h.createGroup).Methods(http.MethodPost).Name("CreateGroup")
	api.HandleFunc("/groups", h.listGroups).Methods(http.MethodGet).Name("ListGroups")
	api.HandleFunc("/groups/{id:[0-9]+}", h.getGroup).Methods(http.MethodGet).Name("GetGroup")
	api.HandleFunc("/groups/{id:[0-9]+}", h.updateGroup).Methods(http.MethodPut).Name("UpdateGroup")
	api.HandleFunc("/groups/{id:[0-9]+}", h.deleteGroup).Methods(http.MethodDelete).Name("DeleteGroup")
	api.HandleFunc("/groups/{groupId:[0-9]+}/members", h.addMember).Methods(http.MethodPost).Name("AddMember")
	api.HandleFunc("/groups/{groupId:[0-9]+}/member/{memberId:[0-9]+}", h.removeMember).Methods(http.MethodDelete).Name("RemoveMember")

	api.HandleFunc("/bills", h.createBill).Methods(http.MethodPost).Name("CreateBill")
	api.HandleFunc("/bills", h.listBills).Methods(http.MethodGet).Name("ListBills")
	api.HandleFunc("/bills/group/{groupId:[0-9]+}", h.listGroupBills).Methods(http.MethodGet).Name("ListGroupBills")
	api.HandleFunc("/bills/{id:[0-9]+}", h.getBill).Methods(http.MethodGet).Name("GetBill")
	api.HandleFunc("/bills/{id:[0-9]+}", h.updateBill).Methods(http.MethodPut).Name("UpdateBill")
	api.HandleFunc("/bills/{id:[0-9]+}", h.deleteBill).Methods(http.MethodDelete).Name("DeleteBill")
	api.HandleFunc("/bills/{id:[0-9]+}/mark-paid", h.markBillPaid).Methods(http.MethodPatch).Name("MarkBillPaid")

	api.HandleFunc("/payments", h.createPayment).Methods(http.MethodPost).Name("CreatePayment")
	api.HandleFunc("/payments", h.listPayments).Methods(http.MethodGet).Name("ListPayments")
	api.HandleFunc("/payments/{id:[0-9]+}", h.getPayment).Methods(http.MethodGet).Name("GetPayment")

	api.HandleFunc("/notifications", h.listAllNotifications).Methods(http.MethodGet).Name("ListAllNotifications")
	api.HandleFunc("/notifications", h.createNotification).Methods(http.MethodPost).Name("CreateNotification")
	api.HandleFunc("/notifications/user/{userId:[0-9]+}", h.listUserNotifications).Methods(http.MethodGet).Name("ListUserNotifications")
	api.HandleFunc("/notifications/user/{userId:[0-9]+}/unread-count", h.countUnread).Methods(http.MethodGet).Name("CountUnread")
	api.HandleFunc("/notifications/{id:[0-9]+}/read", h.markNotificationRead).Methods(http.MethodPatch).Name("MarkNotificationRead")

	api.HandleFunc("/admin/login", h.adminLogin).Methods(http.MethodPost).Name("AdminLogin")
	api.HandleFunc("/admin/users", h.adminListUsers).Methods(http.MethodGet).Name("AdminListUsers")
	api.HandleFunc("/admin/users/{id:[0-9]+}/role", h.adminUpdateRole).Methods(http.MethodPut).Name("AdminUpdateRole")
	api.HandleFunc("/admin/users/{id:[0-9]+}", h.adminDeleteUser).Methods(http.MethodDelete).Name("AdminDeleteUser")
	api.HandleFunc("/admin/logs", h.adminListLogs).Methods(http.MethodGet).Name("AdminListLogs")

	return r, nil
}

// pathID parses a numeric path variable.
func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s", domain.ErrInvalidInput, name)
	}
	return int32(id), nil
}

// pageParams reads the optional page and pageSize query parameters.
func pageParams(r *http.Request) (int32, int32) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 32)
	size, _ := strconv.ParseInt(q.Get("pageSize"), 10, 32)
	return int32(page), int32(size)
}

// requireSelfOrAdmin allows the caller to act on their own records, or on
// anyone's when they are an administrator.
func requireSelfOrAdmin(ctx context.Context, userID int32) (int32, error) {
	callerID, err := GetUserIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	if callerID != userID && getRoleFromContext(ctx) != domain.UserRoleAdmin {
		return 0, fmt.Errorf("%w: you may only access your own records", domain.ErrForbidden)
	}
	return callerID, nil
}

func setTotalCount(w http.ResponseWriter, total int32) {
	w.Header().Set("X-Total-Count", strconv.Itoa(int(total)))
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
