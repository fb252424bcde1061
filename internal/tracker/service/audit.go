package service

import (
	"context"
	"log/slog"
	"time"

	"incidenthub/internal/tracker/model"
)

// recordAudit appends an audit entry. Best effort: a storage failure is
// logged and swallowed so audit writes can never fail the primary operation.
func (s *Service) recordAudit(ctx context.Context, actor *model.Identity, meta RequestMeta, action, details, resourceID, resourceType string) {
	entry := &model.AuditLog{
		Action:       action,
		Details:      details,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		Timestamp:    time.Now(),
	}
	if actor != nil {
		entry.UserID = actor.ID
	}

	if err := s.Repo.CreateAuditLog(ctx, entry); err != nil {
		slog.Error("failed to create audit log",
			"action", action,
			"resource_id", resourceID,
			"error", err,
		)
	}
}

// notify stores a notification record and pushes the realtime event to the
// recipient's room. Non-fatal to the triggering mutation.
func (s *Service) notify(ctx context.Context, userID, title, message, notifType, incidentID string) {
	n := &model.Notification{
		UserID:     userID,
		Title:      title,
		Message:    message,
		Type:       notifType,
		IncidentID: incidentID,
		CreatedAt:  time.Now(),
	}
	if err := s.Repo.CreateNotification(ctx, n); err != nil {
		slog.Error("failed to create notification",
			"user_id", userID,
			"type", notifType,
			"error", err,
		)
	}

	s.Hub.ToRoom(userID, model.EventNotification, model.NotificationEvent{
		Type:       notifType,
		IncidentID: incidentID,
		Title:      title,
		Message:    message,
	})
}
