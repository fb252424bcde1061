package handler

import (
	"net/http"

	"incidenthub/internal/tracker/model"

	"github.com/labstack/echo/v4"
)

// PostIncident handles POST /incidents
func (h *TrackerHandler) PostIncident(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.CreateIncidentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	incident, err := h.Service.CreateIncident(c.Request().Context(), identity, metaFrom(c), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    incident,
	})
}

// GetIncidents handles GET /incidents
func (h *TrackerHandler) GetIncidents(c echo.Context) error {
	var req model.ListIncidentsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid parameters"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	resp, err := h.Service.ListIncidents(c.Request().Context(), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, resp)
}

// GetUserIncidents handles GET /incidents/user
func (h *TrackerHandler) GetUserIncidents(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	incidents, err := h.Service.ListUserIncidents(c.Request().Context(), identity)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, incidents)
}

// GetIncident handles GET /incidents/:id
func (h *TrackerHandler) GetIncident(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	incident, err := h.Service.GetIncident(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, incident)
}

// PutIncident handles PUT /incidents/:id
func (h *TrackerHandler) PutIncident(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.UpdateIncidentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	incident, err := h.Service.UpdateIncident(c.Request().Context(), identity, metaFrom(c), c.Param("id"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    incident,
	})
}

// DeleteIncident handles DELETE /incidents/:id
func (h *TrackerHandler) DeleteIncident(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Service.DeleteIncident(c.Request().Context(), identity, metaFrom(c), c.Param("id")); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    map[string]interface{}{},
	})
}

// PutIncidentStatus handles PUT /incidents/:id/status
func (h *TrackerHandler) PutIncidentStatus(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	incident, err := h.Service.ChangeStatus(c.Request().Context(), identity, metaFrom(c), c.Param("id"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    incident,
	})
}

// PutIncidentAssign handles PUT /incidents/:id/assign
func (h *TrackerHandler) PutIncidentAssign(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.AssignIncidentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	incident, err := h.Service.AssignIncident(c.Request().Context(), identity, metaFrom(c), c.Param("id"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    incident,
	})
}

// PutBulkUpdate handles PUT /incidents/bulk-update
func (h *TrackerHandler) PutBulkUpdate(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.BulkUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	count, err := h.Service.BulkUpdateStatus(c.Request().Context(), identity, metaFrom(c), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   count,
	})
}

// DeleteBulk handles DELETE /incidents/bulk-delete
func (h *TrackerHandler) DeleteBulk(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.BulkDeleteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	count, err := h.Service.BulkDeleteIncidents(c.Request().Context(), identity, metaFrom(c), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   count,
	})
}

// GetDashboardStats handles GET /dashboard/stats
func (h *TrackerHandler) GetDashboardStats(c echo.Context) error {
	stats, err := h.Service.DashboardStats(c.Request().Context())
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, stats)
}
