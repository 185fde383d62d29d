package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"invested/internal/service"
	"invested/internal/survey"
)

// SurveyHandler handles survey read/update endpoints.
type SurveyHandler struct {
	surveyService service.SurveyService
}

// NewSurveyHandler creates a new survey handler.
func NewSurveyHandler(surveyService service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveyService: surveyService}
}

// AnswerPayload is one submitted answer. The answer field accepts a string
// or an array of strings; survey.Value rejects anything else at bind time.
type AnswerPayload struct {
	QuestionID string       `json:"questionId" validate:"required"`
	Answer     survey.Value `json:"answer"`
}

// UpdateSurveyRequest represents a survey submission.
type UpdateSurveyRequest struct {
	Answers []AnswerPayload `json:"answers" validate:"required,min=1,dive"`
}

// UpdateSurvey godoc
// @Summary Update a user's survey answers
// @Tags survey
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateSurveyRequest true "Answer batch"
// @Success 200 {object} service.SurveyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/survey [put]
func (h *SurveyHandler) UpdateSurvey(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req UpdateSurveyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answers := make([]survey.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, survey.Answer{QuestionID: a.QuestionID, Value: a.Answer})
	}

	result, err := h.surveyService.UpdateSurvey(c.Request().Context(), userID, answers)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetSurvey godoc
// @Summary Get a user's survey answers
// @Tags survey
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} service.SurveyResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/survey [get]
func (h *SurveyHandler) GetSurvey(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	result, err := h.surveyService.GetSurveyAnswers(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, result)
}
