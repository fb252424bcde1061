package router

import (
	"incidenthub/internal/tracker/handler"
	"incidenthub/internal/tracker/model"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterRoutes(e *echo.Echo, h *handler.TrackerHandler, ws *handler.WSHandler, auth *handler.Authenticator) {
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)

	// Realtime channel (token auth happens inside the handler, before upgrade)
	e.GET("/ws", ws.Connect)

	api := e.Group("/api")
	api.Use(handler.RequestIDMiddleware)
	api.Use(auth.Middleware())

	adminOnly := handler.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)
	superadminOnly := handler.RequireRoles(model.RoleSuperAdmin)

	// Incident lifecycle
	api.POST("/incidents", h.PostIncident)
	api.GET("/incidents", h.GetIncidents, adminOnly)
	api.GET("/incidents/user", h.GetUserIncidents)
	api.PUT("/incidents/bulk-update", h.PutBulkUpdate, adminOnly)
	api.DELETE("/incidents/bulk-delete", h.DeleteBulk, superadminOnly)
	api.GET("/incidents/:id", h.GetIncident)
	api.PUT("/incidents/:id", h.PutIncident, adminOnly)
	api.DELETE("/incidents/:id", h.DeleteIncident, adminOnly)
	api.PUT("/incidents/:id/status", h.PutIncidentStatus, adminOnly)
	api.PUT("/incidents/:id/assign", h.PutIncidentAssign, adminOnly)

	// Comment thread
	api.GET("/incidents/:id/comments", h.GetComments)
	api.POST("/incidents/:id/comments", h.PostComment)
	api.DELETE("/comments/:id", h.DeleteComment)

	// Notification mailbox
	api.GET("/notifications", h.GetNotifications)
	api.PUT("/notifications/read-all", h.PutNotificationsReadAll)
	api.PUT("/notifications/:id/read", h.PutNotificationRead)
	api.DELETE("/notifications/read", h.DeleteReadNotifications)
	api.DELETE("/notifications/:id", h.DeleteNotification)

	// Audit trail read side
	api.GET("/audit-logs", h.GetAuditLogs, superadminOnly)
	api.GET("/audit-logs/resource/:resourceType/:resourceId", h.GetResourceAuditLogs, adminOnly)

	// Dashboard aggregation
	api.GET("/dashboard/stats", h.GetDashboardStats, adminOnly)
}
