package handler

import (
	"net/http"

	"incidenthub/internal/tracker/model"

	"github.com/labstack/echo/v4"
)

// GetAuditLogs handles GET /audit-logs
func (h *TrackerHandler) GetAuditLogs(c echo.Context) error {
	var req model.ListAuditLogsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid parameters"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	resp, err := h.Service.ListAuditLogs(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetResourceAuditLogs handles GET /audit-logs/resource/:resourceType/:resourceId
func (h *TrackerHandler) GetResourceAuditLogs(c echo.Context) error {
	logs, err := h.Service.ListResourceAuditLogs(c.Request().Context(), c.Param("resourceType"), c.Param("resourceId"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(logs),
		"logs":    logs,
	})
}
