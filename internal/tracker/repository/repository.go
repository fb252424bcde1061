package repository

import (
	"context"
	"time"

	"incidenthub/internal/tracker/model"
)

type IncidentRepository interface {
	// Create a new incident (ID assigned if empty)
	CreateIncident(ctx context.Context, incident *model.Incident) error
	// Find a single incident; returns (nil, nil) when absent
	FindIncidentByID(ctx context.Context, id string) (*model.Incident, error)
	// Find incidents with filter, search, sort and pagination; returns total count
	FindIncidents(ctx context.Context, req model.ListIncidentsReq) ([]*model.Incident, int64, error)
	// Find all incidents reported by a user, newest first
	FindIncidentsByReporter(ctx context.Context, userID string) ([]*model.Incident, error)
	// Find incidents by id set
	FindIncidentsByIDs(ctx context.Context, ids []string) ([]*model.Incident, error)
	// Generic field merge; returns the updated document, nil when absent
	UpdateIncidentFields(ctx context.Context, id string, req model.UpdateIncidentReq, now time.Time) (*model.Incident, error)
	// Atomically set status and append the history entry in one write
	UpdateIncidentStatus(ctx context.Context, id, status string, entry model.StatusEntry, now time.Time) (bool, error)
	// Atomically set assignment; bumps open incidents to in-progress with the
	// given history entry in the same write. Returns (found, statusBumped).
	AssignIncident(ctx context.Context, id, assigneeID string, entry model.StatusEntry, now time.Time) (bool, bool, error)
	// Apply a status change with history entry to every matching incident
	BulkUpdateStatus(ctx context.Context, ids []string, status string, entry model.StatusEntry, now time.Time) (int64, error)
	// Set resolvedAt only where currently unset (write-once guarantee)
	SetResolvedAt(ctx context.Context, ids []string, now time.Time) error
	// Hard delete
	DeleteIncident(ctx context.Context, id string) error
	// Bulk hard delete; returns deleted count
	DeleteIncidents(ctx context.Context, ids []string) (int64, error)
	// Read-only aggregation over the incident collection
	IncidentStats(ctx context.Context) (*model.DashboardStats, error)
	// Initialize indexes
	EnsureIncidentIndexes(ctx context.Context) error
}

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	// Returns (nil, nil) when absent
	FindCommentByID(ctx context.Context, id string) (*model.Comment, error)
	// Ordered by creation ascending
	FindCommentsByIncident(ctx context.Context, incidentID string) ([]*model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	// Remove a deleted incident's thread
	DeleteCommentsByIncidents(ctx context.Context, incidentIDs []string) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	// Returns (nil, nil) when absent
	FindNotificationByID(ctx context.Context, id string) (*model.Notification, error)
	// Newest first, capped
	FindNotificationsByUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, id string) error
	DeleteReadNotifications(ctx context.Context, userID string) error
}

type AuditRepository interface {
	// Append-only; no update or delete is ever exposed
	CreateAuditLog(ctx context.Context, entry *model.AuditLog) error
	FindAuditLogs(ctx context.Context, req model.ListAuditLogsReq) ([]*model.AuditLog, int64, error)
	FindAuditLogsByResource(ctx context.Context, resourceType, resourceID string) ([]*model.AuditLog, error)
}

type UserRepository interface {
	// Returns (nil, nil) when absent
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	FindUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error)
	// The admin/superadmin population for creation fan-out
	FindUsersByRoles(ctx context.Context, roles []string) ([]*model.User, error)
}

// Repository is the full storage surface the service layer depends on.
type Repository interface {
	IncidentRepository
	CommentRepository
	NotificationRepository
	AuditRepository
	UserRepository
}
