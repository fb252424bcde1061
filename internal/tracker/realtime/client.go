package realtime

import (
	"encoding/json"
	"log/slog"
	"time"

	"incidenthub/internal/tracker/model"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

// Client is one authenticated realtime connection.
type Client struct {
	Identity model.Identity

	hub  *Hub
	conn *websocket.Conn
	send chan Event
}

func NewClient(hub *Hub, conn *websocket.Conn, identity model.Identity) *Client {
	return &Client{
		Identity: identity,
		hub:      hub,
		conn:     conn,
		send:     make(chan Event, sendBufferSize),
	}
}

// deliver enqueues without blocking; a full buffer means the event is dropped.
func (c *Client) deliver(ev Event) {
	select {
	case c.send <- ev:
	default:
		slog.Warn("dropping event for slow client",
			"user_id", c.Identity.ID,
			"event", ev.Event,
		)
	}
}

// WritePump drains the send buffer onto the connection. One per client.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump processes inbound messages until the connection closes.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg struct {
			Event   string          `json:"event"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "user_id", c.Identity.ID, "error", err)
			}
			return
		}
		c.handleMessage(msg.Event, msg.Payload)
	}
}

// handleMessage processes client-originated events. Room join/leave is the
// client's lifecycle to drive; the remaining events are legacy cross-tab
// relays and are never the authoritative trigger for persistence — the HTTP
// mutation path is.
func (c *Client) handleMessage(event string, payload json.RawMessage) {
	switch event {
	case "joinIncident":
		var p struct {
			IncidentID string `json:"incidentId"`
		}
		if err := json.Unmarshal(payload, &p); err != nil || p.IncidentID == "" {
			return
		}
		c.hub.Join(c, model.IncidentRoom(p.IncidentID))

	case "leaveIncident":
		var p struct {
			IncidentID string `json:"incidentId"`
		}
		if err := json.Unmarshal(payload, &p); err != nil || p.IncidentID == "" {
			return
		}
		c.hub.Leave(c, model.IncidentRoom(p.IncidentID))

	case "statusUpdate":
		var p struct {
			IncidentID string `json:"incidentId"`
			Status     string `json:"status"`
			ReportedBy string `json:"reportedBy"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		c.hub.broadcastExcept(c, model.EventIncidentUpdate, p)
		if p.ReportedBy != "" {
			c.hub.ToRoom(p.ReportedBy, model.EventNotification, model.NotificationEvent{
				Type:       model.NotificationTypeIncidentUpdate,
				IncidentID: p.IncidentID,
				Title:      "Incident Status Updated",
				Message:    "Your incident status has been updated to " + p.Status,
			})
		}

	case "newIncident":
		var p json.RawMessage
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		c.hub.ToRoom(model.RoomAdmins, model.EventNewIncident, p)

	case "newComment":
		var p struct {
			IncidentID    string          `json:"incidentId"`
			IncidentOwner string          `json:"incidentOwner"`
			Comment       json.RawMessage `json:"comment"`
		}
		if err := json.Unmarshal(payload, &p); err != nil || p.IncidentID == "" {
			return
		}
		c.hub.ToRoom(model.IncidentRoom(p.IncidentID), model.EventNewComment, p.Comment)
		if p.IncidentOwner != "" && p.IncidentOwner != c.Identity.ID {
			c.hub.ToRoom(p.IncidentOwner, model.EventNotification, model.NotificationEvent{
				Type:       model.NotificationTypeComment,
				IncidentID: p.IncidentID,
				Title:      "New Comment",
				Message:    c.Identity.Name + " commented on your incident",
			})
		}

	case "incidentAssigned":
		var p struct {
			IncidentID string `json:"incidentId"`
			AssignedTo string `json:"assignedTo"`
		}
		if err := json.Unmarshal(payload, &p); err != nil {
			return
		}
		if p.AssignedTo != "" {
			c.hub.ToRoom(p.AssignedTo, model.EventNotification, model.NotificationEvent{
				Type:       model.NotificationTypeAssignment,
				IncidentID: p.IncidentID,
				Title:      "Incident Assigned",
				Message:    "An incident has been assigned to you",
			})
		}

	default:
		slog.Debug("ignoring unknown client event", "event", event)
	}
}
