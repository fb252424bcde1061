package handler

import (
	"net/http"

	"incidenthub/internal/tracker/model"

	"github.com/labstack/echo/v4"
)

// GetComments handles GET /incidents/:id/comments
func (h *TrackerHandler) GetComments(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	comments, err := h.Service.ListComments(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, comments)
}

// PostComment handles POST /incidents/:id/comments
func (h *TrackerHandler) PostComment(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	var req model.AddCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Error: model.ErrorDetail{Code: "bad_request", Message: "Invalid body"},
		})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, validationError(err))
	}

	comment, err := h.Service.AddComment(c.Request().Context(), identity, metaFrom(c), c.Param("id"), req)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /comments/:id
func (h *TrackerHandler) DeleteComment(c echo.Context) error {
	identity, err := identityFrom(c)
	if err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	if err := h.Service.DeleteComment(c.Request().Context(), identity, metaFrom(c), c.Param("id")); err != nil {
		code, body := httpError(err)
		return c.JSON(code, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    map[string]interface{}{},
	})
}
