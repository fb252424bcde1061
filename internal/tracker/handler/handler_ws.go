package handler

import (
	"net/http"

	"incidenthub/internal/tracker/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin dashboards connect directly; auth is the token, not the origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades authenticated connections into hub clients.
type WSHandler struct {
	Hub  *realtime.Hub
	Auth *Authenticator
}

func NewWSHandler(hub *realtime.Hub, auth *Authenticator) *WSHandler {
	return &WSHandler{Hub: hub, Auth: auth}
}

// Connect handles GET /ws. Admission requires a token that resolves to an
// active identity; rejection is terminal, the hub never retries.
func (h *WSHandler) Connect(c echo.Context) error {
	identity, err := h.Auth.ResolveIdentity(c.Request().Context(), bearerToken(c))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := realtime.NewClient(h.Hub, conn, *identity)
	h.Hub.Register(client)

	go client.WritePump()
	go client.ReadPump()

	return nil
}
