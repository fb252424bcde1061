package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetNotifications handles GET /notifications
func (h *TrackerHandler) GetNotifications(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	notifications, err := h.Service.ListNotifications(c.Request().Context(), identity)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, notifications)
}

// PutNotificationRead handles PUT /notifications/:id/read
func (h *TrackerHandler) PutNotificationRead(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	notification, err := h.Service.MarkNotificationRead(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    notification,
	})
}

// PutNotificationsReadAll handles PUT /notifications/read-all
func (h *TrackerHandler) PutNotificationsReadAll(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Service.MarkAllNotificationsRead(c.Request().Context(), identity); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "All notifications marked as read",
	})
}

// DeleteNotification handles DELETE /notifications/:id
func (h *TrackerHandler) DeleteNotification(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Service.DeleteNotification(c.Request().Context(), identity, c.Param("id")); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    map[string]interface{}{},
	})
}

// DeleteReadNotifications handles DELETE /notifications/read
func (h *TrackerHandler) DeleteReadNotifications(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Service.DeleteReadNotifications(c.Request().Context(), identity); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "All read notifications deleted",
	})
}
