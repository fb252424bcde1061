package tests

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"

	"incidenthub/internal/tracker/handler"
	"incidenthub/internal/tracker/model"
	"incidenthub/internal/tracker/realtime"
	"incidenthub/internal/tracker/router"
	"incidenthub/internal/tracker/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

const testSecret = "test-secret"

// RecordedEvent is one broadcast captured by the stub hub.
type RecordedEvent struct {
	Room    string
	Event   string
	Payload interface{}
}

// StubBroadcaster records realtime emissions instead of delivering them.
type StubBroadcaster struct {
	mu     sync.Mutex
	Events []RecordedEvent
}

func (b *StubBroadcaster) ToRoom(room, event string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, RecordedEvent{Room: room, Event: event, Payload: payload})
}

func (b *StubBroadcaster) ToAll(event string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, RecordedEvent{Room: "*", Event: event, Payload: payload})
}

// EventsFor returns the events broadcast to one room.
func (b *StubBroadcaster) EventsFor(room string) []RecordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []RecordedEvent
	for _, ev := range b.Events {
		if ev.Room == room {
			out = append(out, ev)
		}
	}
	return out
}

// SetupServer wires the full Echo stack over the mock repository and a
// recording broadcaster.
func SetupServer(repo *MockRepository, hub *StubBroadcaster) *echo.Echo {
	e := echo.New()
	svc := service.NewService(repo, hub)
	auth := handler.NewAuthenticator(testSecret, repo)
	h := handler.NewTrackerHandler(svc)
	ws := handler.NewWSHandler(realtime.NewHub(), auth)
	router.RegisterRoutes(e, h, ws, auth)
	return e
}

// BearerToken mints a token the test Authenticator accepts for the user.
func BearerToken(userID string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": userID})
	signed, _ := token.SignedString([]byte(testSecret))
	return "Bearer " + signed
}

// GivenUser registers the directory lookup the auth middleware performs.
func GivenUser(repo *MockRepository, user *model.User) {
	repo.On("FindUserByID", mock.Anything, user.ID).Return(user, nil)
}

func ActiveUser(id, name, role string) *model.User {
	return &model.User{ID: id, Name: name, Email: id + "@example.com", Role: role, IsActive: true}
}

func PerformRequest(e *echo.Echo, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(b))
	} else {
		bodyReader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
