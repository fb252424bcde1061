package tests

import (
	"net/http"
	"strings"
	"testing"

	"incidenthub/internal/tracker/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthentication(t *testing.T) {
	t.Run("garbage token and return 401", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))

		headers := map[string]string{"Authorization": "Bearer not-a-jwt"}
		rec := PerformRequest(e, http.MethodGet, "/api/notifications", nil, headers)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret and return 401", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": "user_a"})
		signed, _ := token.SignedString([]byte("wrong-secret"))

		headers := map[string]string{"Authorization": "Bearer " + signed}
		rec := PerformRequest(e, http.MethodGet, "/api/notifications", nil, headers)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token for an unknown user and return 401", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))

		mockRepo.On("FindUserByID", mock.Anything, "ghost").Return(nil, nil)

		headers := map[string]string{"Authorization": BearerToken("ghost")}
		rec := PerformRequest(e, http.MethodGet, "/api/notifications", nil, headers)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("sub claim is accepted when id is absent", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("user_a", "Alice", model.RoleUser))

		mockRepo.On("FindNotificationsByUser", mock.Anything, "user_a", 20).
			Return([]*model.Notification{}, nil)

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user_a"})
		signed, _ := token.SignedString([]byte(testSecret))

		headers := map[string]string{"Authorization": "Bearer " + signed}
		rec := PerformRequest(e, http.MethodGet, "/api/notifications", nil, headers)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("token query parameter works without the header", func(t *testing.T) {
		mockRepo := new(MockRepository)
		e := SetupServer(mockRepo, new(StubBroadcaster))
		GivenUser(mockRepo, ActiveUser("user_a", "Alice", model.RoleUser))

		mockRepo.On("FindNotificationsByUser", mock.Anything, "user_a", 20).
			Return([]*model.Notification{}, nil)

		raw := strings.TrimPrefix(BearerToken("user_a"), "Bearer ")
		rec := PerformRequest(e, http.MethodGet, "/api/notifications?token="+raw, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
