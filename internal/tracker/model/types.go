package model

import "time"

// Identity is the authenticated caller attached to every request and
// realtime connection. Resolved by the auth middleware, trusted downstream.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// User is the stored identity record. Credential fields live with the
// external auth service; this service only reads the directory.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Role      string    `json:"role" bson:"role"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// UserSummary is the populated reference shape returned on reads.
type UserSummary struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// Attachment is an opaque evidence descriptor sourced from the blob store.
type Attachment struct {
	Name string `json:"name" bson:"name"`
	URL  string `json:"url" bson:"url"`
	Type string `json:"type" bson:"type"`
	Size int64  `json:"size" bson:"size"`
}

// StatusEntry is one record in an incident's append-only status ledger.
type StatusEntry struct {
	Status    string    `json:"status" bson:"status"`
	UpdatedBy string    `json:"updatedBy" bson:"updated_by"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Comment   string    `json:"comment" bson:"comment"`
}

type Incident struct {
	ID            string        `json:"id" bson:"_id,omitempty"`
	Title         string        `json:"title" bson:"title"`
	Description   string        `json:"description" bson:"description"`
	Category      string        `json:"category" bson:"category"`
	Priority      string        `json:"priority" bson:"priority"`
	Status        string        `json:"status" bson:"status"`
	ReportedBy    string        `json:"reportedBy" bson:"reported_by"`
	AssignedTo    string        `json:"assignedTo,omitempty" bson:"assigned_to,omitempty"`
	AssignedAt    *time.Time    `json:"assignedAt,omitempty" bson:"assigned_at,omitempty"`
	ResolvedAt    *time.Time    `json:"resolvedAt,omitempty" bson:"resolved_at,omitempty"`
	Evidence      []Attachment  `json:"evidence,omitempty" bson:"evidence,omitempty"`
	StatusHistory []StatusEntry `json:"statusHistory" bson:"status_history"`
	CreatedAt     time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time     `json:"updatedAt" bson:"updated_at"`
}

// IncidentDetail is an incident with its identity references populated.
type IncidentDetail struct {
	Incident
	Reporter *UserSummary        `json:"reporter,omitempty"`
	Assignee *UserSummary        `json:"assignee,omitempty"`
	History  []StatusEntryDetail `json:"history,omitempty"`
}

type StatusEntryDetail struct {
	StatusEntry
	Updater *UserSummary `json:"updater,omitempty"`
}

type Comment struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	IncidentID string    `json:"incidentId" bson:"incident_id"`
	UserID     string    `json:"userId" bson:"user_id"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

// CommentDetail is a comment with its author reference populated.
type CommentDetail struct {
	Comment
	Author *UserSummary `json:"author,omitempty"`
}

type Notification struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"userId" bson:"user_id"`
	Title      string    `json:"title" bson:"title"`
	Message    string    `json:"message" bson:"message"`
	Type       string    `json:"type" bson:"type"`
	IncidentID string    `json:"incidentId,omitempty" bson:"incident_id,omitempty"`
	Read       bool      `json:"read" bson:"read"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
}

type AuditLog struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"userId,omitempty" bson:"user_id,omitempty"`
	Action       string    `json:"action" bson:"action"`
	Details      string    `json:"details" bson:"details"`
	ResourceID   string    `json:"resourceId,omitempty" bson:"resource_id,omitempty"`
	ResourceType string    `json:"resourceType,omitempty" bson:"resource_type,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty" bson:"ip_address,omitempty"`
	UserAgent    string    `json:"userAgent,omitempty" bson:"user_agent,omitempty"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
}

// NotificationEvent is the generic realtime envelope pushed to a user's room.
type NotificationEvent struct {
	Type       string `json:"type"`
	IncidentID string `json:"incidentId"`
	Title      string `json:"title"`
	Message    string `json:"message"`
}

// IncidentSummary is the lightweight shape broadcast to the admins room on creation.
type IncidentSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	ReportedBy Identity  `json:"reportedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DashboardStats is the read-only aggregate over the incident collection.
type DashboardStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByCategory map[string]int64 `json:"byCategory"`
	ByPriority map[string]int64 `json:"byPriority"`
	Recent     []*Incident      `json:"recent"`
}

// ErrorResponse for consistent error handling
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *ErrorDetail) Error() string {
	return e.Message
}
