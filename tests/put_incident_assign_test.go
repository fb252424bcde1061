package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"incidenthub/internal/tracker/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPutIncidentAssign(t *testing.T) {
	apiPath := "/api/incidents/inc_1/assign"

	t.Run("assigning an open incident bumps it to in-progress", func(t *testing.T) {
		mockRepo := new(MockRepository)
		hub := new(StubBroadcaster)
		e := SetupServer(mockRepo, hub)
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		before := &model.Incident{
			ID: "inc_1", Title: "DDoS on edge", Category: "DDoS",
			Status: model.StatusOpen, ReportedBy: "user_a",
		}
		after := &model.Incident{
			ID: "inc_1", Title: "DDoS on edge", Category: "DDoS",
			Status: model.StatusInProgress, ReportedBy: "user_a", AssignedTo: "admin_c",
			StatusHistory: []model.StatusEntry{
				{Status: model.StatusOpen, UpdatedBy: "user_a", Comment: "Incident reported"},
				{Status: model.StatusInProgress, UpdatedBy: "admin_b", Comment: "Status changed to in-progress due to assignment"},
			},
		}

		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(before, nil).Once()
		mockRepo.On("AssignIncident", mock.Anything, "inc_1", "admin_c",
			mock.MatchedBy(func(entry model.StatusEntry) bool {
				return entry.Status == model.StatusInProgress &&
					entry.UpdatedBy == "admin_b" &&
					entry.Comment == "Status changed to in-progress due to assignment"
			}), mock.AnythingOfType("time.Time")).Return(true, true, nil)
		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(after, nil).Once()
		mockRepo.On("FindUserByID", mock.Anything, "admin_c").Return(ActiveUser("admin_c", "Carol", model.RoleAdmin), nil)
		mockRepo.On("CreateAuditLog", mock.Anything, mock.MatchedBy(func(entry *model.AuditLog) bool {
			return entry.Action == model.ActionIncidentAssignment &&
				entry.Details == `Incident "DDoS on edge" assigned to Carol by Bob`
		})).Return(nil)
		mockRepo.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
			return n.UserID == "admin_c" && n.Type == model.NotificationTypeAssignment
		})).Return(nil)
		mockRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return([]*model.User{
			ActiveUser("user_a", "Alice", model.RoleUser),
			ActiveUser("admin_c", "Carol", model.RoleAdmin),
		}, nil)

		reqBody := model.AssignIncidentReq{AssignedTo: "admin_c"}
		headers := map[string]string{"Authorization": BearerToken("admin_b")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Success bool                 `json:"success"`
			Data    model.IncidentDetail `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, model.StatusInProgress, resp.Data.Status)
		assert.Equal(t, "admin_c", resp.Data.AssignedTo)

		assert.Len(t, hub.EventsFor("admin_c"), 1)
		assert.Equal(t, model.EventNotification, hub.EventsFor("admin_c")[0].Event)
		mockRepo.AssertExpectations(t)
	})

	t.Run("self-assignment skips the notification", func(t *testing.T) {
		mockRepo := new(MockRepository)
		hub := new(StubBroadcaster)
		e := SetupServer(mockRepo, hub)
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		incident := &model.Incident{
			ID: "inc_1", Title: "DDoS on edge", Category: "DDoS",
			Status: model.StatusInProgress, ReportedBy: "user_a", AssignedTo: "admin_b",
		}

		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(incident, nil)
		mockRepo.On("AssignIncident", mock.Anything, "inc_1", "admin_b",
			mock.Anything, mock.AnythingOfType("time.Time")).Return(true, false, nil)
		mockRepo.On("CreateAuditLog", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("FindUsersByIDs", mock.Anything, mock.Anything).Return([]*model.User{}, nil)

		reqBody := model.AssignIncidentReq{AssignedTo: "admin_b"}
		headers := map[string]string{"Authorization": BearerToken("admin_b")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusOK, rec.Code)
		mockRepo.AssertNotCalled(t, "CreateNotification", mock.Anything, mock.Anything)
		assert.Empty(t, hub.Events)
	})

	t.Run("missing assignee id and return 400", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		headers := map[string]string{"Authorization": BearerToken("admin_b")}
		rec := PerformRequest(e, http.MethodPut, apiPath, model.AssignIncidentReq{}, headers)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing incident and return 404", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("admin_b", "Bob", model.RoleAdmin))

		mockRepo.On("FindIncidentByID", mock.Anything, "inc_1").Return(nil, nil)

		reqBody := model.AssignIncidentReq{AssignedTo: "admin_c"}
		headers := map[string]string{"Authorization": BearerToken("admin_b")}

		rec := PerformRequest(e, http.MethodPut, apiPath, reqBody, headers)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
