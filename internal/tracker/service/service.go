package service

import (
	"context"
	"errors"

	"incidenthub/internal/tracker/model"
	"incidenthub/internal/tracker/repository"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
)

// Broadcaster is the realtime fan-out surface the service emits through.
// Satisfied by *realtime.Hub; tests substitute a recorder.
type Broadcaster interface {
	ToRoom(room, event string, payload interface{})
	ToAll(event string, payload interface{})
}

// RequestMeta carries connection-level attribution for the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type IncidentService interface {
	CreateIncident(ctx context.Context, actor model.Identity, meta RequestMeta, req model.CreateIncidentReq) (*model.Incident, error)
	GetIncident(ctx context.Context, actor model.Identity, id string) (*model.IncidentDetail, error)
	ListIncidents(ctx context.Context, req model.ListIncidentsReq) (*model.ListIncidentsResp, error)
	ListUserIncidents(ctx context.Context, actor model.Identity) ([]*model.IncidentDetail, error)
	UpdateIncident(ctx context.Context, actor model.Identity, meta RequestMeta, id string, req model.UpdateIncidentReq) (*model.Incident, error)
	DeleteIncident(ctx context.Context, actor model.Identity, meta RequestMeta, id string) error
	ChangeStatus(ctx context.Context, actor model.Identity, meta RequestMeta, id string, req model.UpdateStatusReq) (*model.IncidentDetail, error)
	AssignIncident(ctx context.Context, actor model.Identity, meta RequestMeta, id string, req model.AssignIncidentReq) (*model.IncidentDetail, error)
	BulkUpdateStatus(ctx context.Context, actor model.Identity, meta RequestMeta, req model.BulkUpdateReq) (int64, error)
	BulkDeleteIncidents(ctx context.Context, actor model.Identity, meta RequestMeta, req model.BulkDeleteReq) (int64, error)

	AddComment(ctx context.Context, actor model.Identity, meta RequestMeta, incidentID string, req model.AddCommentReq) (*model.CommentDetail, error)
	ListComments(ctx context.Context, actor model.Identity, incidentID string) ([]*model.CommentDetail, error)
	DeleteComment(ctx context.Context, actor model.Identity, meta RequestMeta, id string) error

	ListNotifications(ctx context.Context, actor model.Identity) ([]*model.Notification, error)
	MarkNotificationRead(ctx context.Context, actor model.Identity, id string) (*model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, actor model.Identity) error
	DeleteNotification(ctx context.Context, actor model.Identity, id string) error
	DeleteReadNotifications(ctx context.Context, actor model.Identity) error

	ListAuditLogs(ctx context.Context, req model.ListAuditLogsReq) (*model.ListAuditLogsResp, error)
	ListResourceAuditLogs(ctx context.Context, resourceType, resourceID string) ([]*model.AuditLog, error)

	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
}

type Service struct {
	Repo repository.Repository
	Hub  Broadcaster
}

func NewService(repo repository.Repository, hub Broadcaster) *Service {
	return &Service{Repo: repo, Hub: hub}
}

// userSummaries resolves a set of user ids to their populated reference shape.
func (s *Service) userSummaries(ctx context.Context, ids []string) (map[string]*model.UserSummary, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		uniq = append(uniq, id)
	}
	if len(uniq) == 0 {
		return map[string]*model.UserSummary{}, nil
	}

	users, err := s.Repo.FindUsersByIDs(ctx, uniq)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*model.UserSummary, len(users))
	for _, u := range users {
		out[u.ID] = &model.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}
