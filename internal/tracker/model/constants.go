package model

// Roles
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Incident statuses
const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

// AllowedStatuses defines the valid incident status values
var AllowedStatuses = map[string]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusResolved:   true,
}

// Incident priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var AllowedPriorities = map[string]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// Incident categories
var AllowedCategories = map[string]bool{
	"Phishing":            true,
	"Malware":             true,
	"Ransomware":          true,
	"Unauthorized Access": true,
	"Data Breach":         true,
	"Social Engineering":  true,
	"DDoS Attack":         true,
	"Insider Threat":      true,
	"Physical Security":   true,
	"Other":               true,
}

// Audit actions (closed set; an unknown action is a programming error)
const (
	ActionUserLogin            = "user_login"
	ActionUserLogout           = "user_logout"
	ActionUserRegister         = "user_register"
	ActionUserUpdate           = "user_update"
	ActionUserDelete           = "user_delete"
	ActionUserStatusChange     = "user_status_change"
	ActionPasswordReset        = "password_reset"
	ActionIncidentCreate       = "incident_create"
	ActionIncidentUpdate       = "incident_update"
	ActionIncidentDelete       = "incident_delete"
	ActionIncidentStatusChange = "incident_status_change"
	ActionIncidentAssignment   = "incident_assignment"
	ActionCommentAdd           = "comment_add"
	ActionCommentDelete        = "comment_delete"
	ActionSystem               = "system"
)

// Audit resource types
const (
	ResourceTypeUser     = "User"
	ResourceTypeIncident = "Incident"
	ResourceTypeComment  = "Comment"
	ResourceTypeSystem   = "System"
)

// Notification types
const (
	NotificationTypeComment        = "comment"
	NotificationTypeAssignment     = "assignment"
	NotificationTypeIncidentUpdate = "incident_update"
)

// Realtime event names
const (
	EventNotification   = "notification"
	EventIncidentUpdate = "incidentUpdate"
	EventNewIncident    = "newIncident"
	EventNewComment     = "newComment"
)

// RoomAdmins is the shared room joined by admin and superadmin connections.
const RoomAdmins = "admins"

// IncidentRoom returns the room name for clients actively viewing an incident.
func IncidentRoom(incidentID string) string {
	return "incident-" + incidentID
}

// IsElevated reports whether the role belongs to the administrative tier.
func IsElevated(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}
