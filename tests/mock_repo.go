package tests

import (
	"context"
	"time"

	"incidenthub/internal/tracker/model"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a shared mock implementation of repository.Repository for testing.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateIncident(ctx context.Context, incident *model.Incident) error {
	args := m.Called(ctx, incident)
	if incident.ID == "" {
		incident.ID = "generated_id"
	}
	return args.Error(0)
}

func (m *MockRepository) FindIncidentByID(ctx context.Context, id string) (*model.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Incident), args.Error(1)
}

func (m *MockRepository) FindIncidents(ctx context.Context, req model.ListIncidentsReq) ([]*model.Incident, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Incident), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindIncidentsByReporter(ctx context.Context, userID string) ([]*model.Incident, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Incident), args.Error(1)
}

func (m *MockRepository) FindIncidentsByIDs(ctx context.Context, ids []string) ([]*model.Incident, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Incident), args.Error(1)
}

func (m *MockRepository) UpdateIncidentFields(ctx context.Context, id string, req model.UpdateIncidentReq, now time.Time) (*model.Incident, error) {
	args := m.Called(ctx, id, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Incident), args.Error(1)
}

func (m *MockRepository) UpdateIncidentStatus(ctx context.Context, id, status string, entry model.StatusEntry, now time.Time) (bool, error) {
	args := m.Called(ctx, id, status, entry, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) AssignIncident(ctx context.Context, id, assigneeID string, entry model.StatusEntry, now time.Time) (bool, bool, error) {
	args := m.Called(ctx, id, assigneeID, entry, now)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockRepository) BulkUpdateStatus(ctx context.Context, ids []string, status string, entry model.StatusEntry, now time.Time) (int64, error) {
	args := m.Called(ctx, ids, status, entry, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) SetResolvedAt(ctx context.Context, ids []string, now time.Time) error {
	args := m.Called(ctx, ids, now)
	return args.Error(0)
}

func (m *MockRepository) DeleteIncident(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteIncidents(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) IncidentStats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func (m *MockRepository) EnsureIncidentIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	if comment.ID == "" {
		comment.ID = "generated_comment_id"
	}
	return args.Error(0)
}

func (m *MockRepository) FindCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockRepository) FindCommentsByIncident(ctx context.Context, incidentID string) ([]*model.Comment, error) {
	args := m.Called(ctx, incidentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

func (m *MockRepository) DeleteComment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteCommentsByIncidents(ctx context.Context, incidentIDs []string) error {
	args := m.Called(ctx, incidentIDs)
	return args.Error(0)
}

func (m *MockRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockRepository) FindNotificationByID(ctx context.Context, id string) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockRepository) FindNotificationsByUser(ctx context.Context, userID string, limit int) ([]*model.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notification), args.Error(1)
}

func (m *MockRepository) MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) DeleteNotification(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteReadNotifications(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) CreateAuditLog(ctx context.Context, entry *model.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockRepository) FindAuditLogs(ctx context.Context, req model.ListAuditLogsReq) ([]*model.AuditLog, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindAuditLogsByResource(ctx context.Context, resourceType, resourceID string) ([]*model.AuditLog, error) {
	args := m.Called(ctx, resourceType, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AuditLog), args.Error(1)
}

func (m *MockRepository) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockRepository) FindUsersByRoles(ctx context.Context, roles []string) ([]*model.User, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}
