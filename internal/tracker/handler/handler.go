package handler

import (
	"net/http"

	"incidenthub/internal/tracker/service"

	"github.com/labstack/echo/v4"
)

type TrackerHandler struct {
	Service service.IncidentService
}

func NewTrackerHandler(s service.IncidentService) *TrackerHandler {
	return &TrackerHandler{Service: s}
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
