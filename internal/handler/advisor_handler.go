package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "invested/internal/errors"
	"invested/internal/service"
)

// AdvisorHandler handles the chat-style advisor proxy endpoint.
type AdvisorHandler struct {
	advisorService service.AdvisorService
}

// NewAdvisorHandler creates a new advisor handler.
func NewAdvisorHandler(advisorService service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

// AdvisorRequest represents an advisor question.
type AdvisorRequest struct {
	UserID       string `json:"userId" validate:"required,uuid4"`
	UserQuestion string `json:"userQuestion" validate:"required,min=1,max=1000"`
}

// Ask godoc
// @Summary Ask the financial advisor
// @Tags advisor
// @Accept json
// @Produce json
// @Param request body AdvisorRequest true "User question"
// @Success 200 {object} service.AdvisorResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /advisor [post]
func (h *AdvisorHandler) Ask(c echo.Context) error {
	var req AdvisorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	result, err := h.advisorService.Ask(c.Request().Context(), userID, req.UserQuestion)
	if err != nil {
		c.Logger().Errorf("advisor request failed: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: fmt.Sprintf("failed to get advisor response: %v", err),
			Code:  "ADVISOR_FAILED",
		})
	}

	return c.JSON(http.StatusOK, result)
}
