package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"

	"invested/internal/config"
	apperrors "invested/internal/errors"
	"invested/internal/handler"
	"invested/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	surveyHandler *handler.SurveyHandler,
	advisorHandler *handler.AdvisorHandler,
	authService service.AuthService,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Register)
	api.POST("/auth/tokens", authHandler.Login)
	api.DELETE("/auth/tokens", authHandler.Logout)

	// Survey and advisor routes are not session-gated: the legacy client
	// flow relies on a plain GET returning 404 as the "not yet completed"
	// signal.
	api.GET("/users/:id/survey", surveyHandler.GetSurvey)
	api.PUT("/users/:id/survey", surveyHandler.UpdateSurvey)
	api.POST("/advisor", advisorHandler.Ask)

	// Secured routes (require a valid session token)
	secured := api.Group("", RequireSession(authService))
	secured.GET("/users/:id", userHandler.GetUser)

	// API documentation is only served in development.
	if cfg.IsDevelopment() {
		api.GET("/doc/swagger", swaggerSpec)
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}
}

// RequireSession validates the bearer token against the session store and
// stores the owning user ID on the request context.
func RequireSession(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := handler.ExtractBearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "authorization token is required",
					Code:  "TOKEN_REQUIRED",
				})
			}

			userID, err := authService.ValidateToken(c.Request().Context(), token)
			if err != nil {
				mapped := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(mapped.StatusCode, mapped.ToErrorResponse())
			}

			c.Set("userID", userID)
			return next(c)
		}
	}
}

// swaggerSpec serves the machine-readable API description.
func swaggerSpec(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "swagger spec unavailable")
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(doc))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
