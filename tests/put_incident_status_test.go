package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"incidenthub/internal/tracker/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPutIncidentStatus(t *testing.T) {
	apiPath := "/api/incidents/inc_1/status"

	openIncident := func() *model.Incident {
		return &model.Incident{
			ID:         "inc_1",
			Title:      "Phishing email",
			Category:   "Phishing",
			Priority:   model.PriorityHigh,
			Status:     model.StatusOpen,
			ReportedBy: "user_a",
			StatusHistory: []model.StatusEntry{
				{Status: model.StatusOpen, UpdatedBy: "user_a", Comment: "Incident reported"},
			},
		}
	}

	t.Run("resolve sets resolvedAt and notifies the reporter", func(t *testing.T) {
		mockRepo := new(MockRepository)
		hub := new(StubBroadcaster)
		e := SetupServer(mockRepo, hub)
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		resolved := openIncident()
		resolved.Status = model.StatusResolved
		resolved.StatusHistory = append(resolved.StatusHistory, model.StatusEntry{
			Status: model.StatusResolved, UpdatedBy: "admin_b", Comment: "Root cause fixed",
		})

		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(openIncident(), nil).Once()
		mockRepo.On("UpdateIncidentStatus", mock.Anything, "inc_1", model.StatusResolved,
			mock.MatchedBy(func(entry model.StatusEntry) bool {
				return entry.Status == model.StatusResolved &&
					entry.UpdatedBy == "admin_b" &&
					entry.Comment == "Root cause fixed"
			}), mock.AnythingOfType("time.Time")).Return(true, nil)
		mockRepo.On("SetResolvedAt", mock.Anything, []string{"inc_1"}, mock.AnythingOfType("time.Time")).Return(nil)
		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(resolved, nil).Once()
		mockRepo.On("CreateAuditLog", mock.Anything, mock.MatchedBy(func(entry *model.AuditLog) bool {
			return entry.Action == model.ActionIncidentStatusChange && entry.ResourceID == "inc_1"
		})).Return(nil)
		mockRepo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == "user_a" && n.Type == model.NotificationTypeIncidentUpdate
		})).Return(nil)
		mockRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return([]*model.User{
			ActiveUser("user_a", "Alice", model.RoleUser),
			ActiveUser("admin_b", "Bob", model.RoleAdmin),
		}, nil)

		reqBody := model.UpdateStatusReq{Status: model.StatusResolved, Comment: "Root cause fixed"}
		headers := map[string]string{"Authorization": BearerToken("admin_b")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool                 `json:"success"`
			Data    model.IncidentDetail `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.StatusResolved, resp.Data.Status)
		assert.Len(t, resp.Data.History, 2)

		assert.Len(t, hub.EventsFor("user_a"), 1)
		assert.Equal(t, model.EventNotification, hub.EventsFor("user_a")[0].Event)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty comment defaults to a canonical message", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		inProgress := openIncident()
		inProgress.Status = model.StatusInProgress

		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(openIncident(), nil).Once()
		mockRepo.On("UpdateIncidentStatus", mock.Anything, "inc_1", model.StatusInProgress,
			mock.MatchedBy(func(entry model.StatusEntry) bool {
				return entry.Comment == "Status changed to in-progress"
			}), mock.AnythingOfType("time.Time")).Return(true, nil)
		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(inProgress, nil).Once()
		mockRepo.On("CreateAuditLog", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return([]*model.User{}, nil)

		reqBody := model.UpdateStatusReq{Status: model.StatusInProgress}
		headers := map[string]string{"Authorization": BearerToken("admin_b")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockRepo.AssertNotCalled(t, "SetResolvedAt", mock.Anything, mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("actor updating own incident gets no notification", func(t *testing.T) {
		mockRepo := new(MockRepository)
		hub := new(StubBroadcaster)
		e := SetupServer(mockRepo, hub)
		GivenUser(mockRepo, ActiveUser("user_a", "Alice", model.RoleAdmin))

		inProgress := openIncident()
		inProgress.Status = model.StatusInProgress

		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(openIncident(), nil).Once()
		mockRepo.On("UpdateIncidentStatus", mock.Anything, "inc_1", model.StatusInProgress,
			mock.Anything, mock.AnythingOfType("time.Time")).Return(true, nil)
		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(inProgress, nil).Once()
		mockRepo.On("CreateAuditLog", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return([]*model.User{}, nil)

		reqBody := model.UpdateStatusReq{Status: model.StatusInProgress}
		headers := map[string]string{"Authorization": BearerToken("user_a")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockRepo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
		assert.Empty(t, hub.Events)
	})

	t.Run("unknown status and return 400", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		reqBody := map[string]string{"status": "closed"}
		headers := map[string]string{"Authorization": BearerToken("admin_b")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockRepo.AssertNotCalled(t, "UpdateIncidentStatus",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing incident and return 404", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(nil, nil)

		reqBody := model.UpdateStatusReq{Status: model.StatusResolved}
		headers := map[string]string{"Authorization": BearerToken("admin_b")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("plain user and return 403", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("user_a", "Alice", model.RoleUser))

		reqBody := model.UpdateStatusReq{Status: model.StatusResolved}
		headers := map[string]string{"Authorization": BearerToken("user_a")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
