package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Any valid access token
	SecurityAdmin                       // Access token carrying the Admin role
)

// EndpointSecurityConfig maps mux route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Operational - Public
	"Health":  SecurityPublic,
	"Metrics": SecurityPublic,

	// Auth - Public
	"Register": SecurityPublic,
	"Login":    SecurityPublic,

	// Auth - Access Protected
	"GetProfile": SecurityAccess,
	"ListUsers":  SecurityAccess,

	// Groups - Access Protected
	"CreateGroup":  SecurityAccess,
	"ListGroups":   SecurityAccess,
	"GetGroup":     SecurityAccess,
	"UpdateGroup":  SecurityAccess,
	"DeleteGroup":  SecurityAccess,
	"AddMember":    SecurityAccess,
	"RemoveMember": SecurityAccess,

	// Bills - Access Protected
	"CreateBill":     SecurityAccess,
	"ListBills":      SecurityAccess,
	"GetBill":        SecurityAccess,
	"ListGroupBills": SecurityAccess,
	"UpdateBill":     SecurityAccess,
	"DeleteBill":     SecurityAccess,
	"MarkBillPaid":   SecurityAccess,

	// Payments - Access Protected
	"CreatePayment": SecurityAccess,
	"ListPayments":  SecurityAccess,
	"GetPayment":    SecurityAccess,

	// Notifications
	"ListAllNotifications":  SecurityAdmin,
	"ListUserNotifications": SecurityAccess,
	"CountUnread":           SecurityAccess,
	"CreateNotification":    SecurityAccess,
	"MarkNotificationRead":  SecurityAccess,

	// Admin - Public
	"AdminLogin": SecurityPublic,

	// Admin - Admin only
	"AdminListUsers":  SecurityAdmin,
	"AdminUpdateRole": SecurityAdmin,
	"AdminDeleteUser": SecurityAdmin,
	"AdminListLogs":   SecurityAdmin,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to access for unknown routes
	return SecurityAccess
}
