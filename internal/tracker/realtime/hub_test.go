package realtime

import (
	"encoding/json"
	"testing"

	"incidenthub/internal/tracker/model"

	"github.com/stretchr/testify/assert"
)

func newTestClient(h *Hub, id, role string) *Client {
	return NewClient(h, nil, model.Identity{ID: id, Name: id, Role: role})
}

func drain(c *Client) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.send:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestRegisterRoomMembership(t *testing.T) {
	h := NewHub()

	user := newTestClient(h, "user_a", model.RoleUser)
	admin := newTestClient(h, "admin_b", model.RoleAdmin)
	super := newTestClient(h, "super_c", model.RoleSuperAdmin)
	h.Register(user)
	h.Register(admin)
	h.Register(super)

	assert.Equal(t, 1, h.RoomSize("user_a"))
	assert.Equal(t, 1, h.RoomSize("admin_b"))
	assert.Equal(t, 2, h.RoomSize(model.RoomAdmins))
}

func TestToRoomDelivery(t *testing.T) {
	h := NewHub()

	a := newTestClient(h, "user_a", model.RoleUser)
	b := newTestClient(h, "user_b", model.RoleUser)
	h.Register(a)
	h.Register(b)

	h.ToRoom("user_a", model.EventNotification, "hello")

	got := drain(a)
	assert.Len(t, got, 1)
	assert.Equal(t, model.EventNotification, got[0].Event)
	assert.Equal(t, "hello", got[0].Payload)
	assert.Empty(t, drain(b))
}

func TestToAllDelivery(t *testing.T) {
	h := NewHub()

	a := newTestClient(h, "user_a", model.RoleUser)
	b := newTestClient(h, "admin_b", model.RoleAdmin)
	h.Register(a)
	h.Register(b)

	h.ToAll(model.EventIncidentUpdate, 42)

	assert.Len(t, drain(a), 1)
	assert.Len(t, drain(b), 1)
}

func TestJoinAndLeaveIncidentRoom(t *testing.T) {
	h := NewHub()

	a := newTestClient(h, "user_a", model.RoleUser)
	h.Register(a)

	room := model.IncidentRoom("inc_1")
	h.Join(a, room)
	assert.Equal(t, 1, h.RoomSize(room))

	h.ToRoom(room, model.EventNewComment, "c")
	assert.Len(t, drain(a), 1)

	h.Leave(a, room)
	assert.Equal(t, 0, h.RoomSize(room))

	h.ToRoom(room, model.EventNewComment, "c")
	assert.Empty(t, drain(a))
}

func TestJoinRequiresRegistration(t *testing.T) {
	h := NewHub()

	stranger := newTestClient(h, "ghost", model.RoleUser)
	h.Join(stranger, model.IncidentRoom("inc_1"))
	assert.Equal(t, 0, h.RoomSize(model.IncidentRoom("inc_1")))
}

func TestUnregisterCleansRooms(t *testing.T) {
	h := NewHub()

	admin := newTestClient(h, "admin_b", model.RoleAdmin)
	h.Register(admin)
	h.Join(admin, model.IncidentRoom("inc_1"))

	h.Unregister(admin)

	assert.Equal(t, 0, h.RoomSize("admin_b"))
	assert.Equal(t, 0, h.RoomSize(model.RoomAdmins))
	assert.Equal(t, 0, h.RoomSize(model.IncidentRoom("inc_1")))

	// send channel is closed so the write pump can exit
	_, open := <-admin.send
	assert.False(t, open)

	// second unregister is a no-op
	h.Unregister(admin)
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	h := NewHub()

	a := newTestClient(h, "user_a", model.RoleUser)
	h.Register(a)

	for i := 0; i < sendBufferSize+5; i++ {
		h.ToRoom("user_a", model.EventNotification, i)
	}

	// overflow is dropped, not blocked on
	assert.Len(t, drain(a), sendBufferSize)
}

func TestHandleJoinIncidentMessage(t *testing.T) {
	h := NewHub()

	a := newTestClient(h, "user_a", model.RoleUser)
	h.Register(a)

	a.handleMessage("joinIncident", json.RawMessage(`{"incidentId":"inc_9"}`))
	assert.Equal(t, 1, h.RoomSize(model.IncidentRoom("inc_9")))

	a.handleMessage("leaveIncident", json.RawMessage(`{"incidentId":"inc_9"}`))
	assert.Equal(t, 0, h.RoomSize(model.IncidentRoom("inc_9")))
}

func TestHandleStatusUpdateRelay(t *testing.T) {
	h := NewHub()

	sender := newTestClient(h, "admin_b", model.RoleAdmin)
	reporter := newTestClient(h, "user_a", model.RoleUser)
	other := newTestClient(h, "user_z", model.RoleUser)
	h.Register(sender)
	h.Register(reporter)
	h.Register(other)

	sender.handleMessage("statusUpdate",
		json.RawMessage(`{"incidentId":"inc_1","status":"resolved","reportedBy":"user_a"}`))

	// everyone but the sender sees the update
	assert.Empty(t, drain(sender))
	assert.Len(t, drain(other), 1)

	// the reporter additionally gets the notification event
	got := drain(reporter)
	assert.Len(t, got, 2)
	assert.Equal(t, model.EventIncidentUpdate, got[0].Event)
	assert.Equal(t, model.EventNotification, got[1].Event)
}

func TestHandleUnknownEventIgnored(t *testing.T) {
	h := NewHub()

	a := newTestClient(h, "user_a", model.RoleUser)
	h.Register(a)

	a.handleMessage("selfDestruct", json.RawMessage(`{}`))
	assert.Empty(t, drain(a))
}
