package handlers

import (
	"context"
	"errors"
	"strings"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pmfolio/web/middleware"
	"pmfolio/web/profile"
	"pmfolio/web/store"
	"pmfolio/web/utils"
	"pmfolio/web/views"
)

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ValidationErrorResponse is returned when a request body fails validation.
type ValidationErrorResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Store    store.Store
	Profiles *profile.Assembler
	Views    *views.Renderer
	Logger   *logrus.Logger
	Validate *validator.Validate
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(s store.Store, profiles *profile.Assembler, renderer *views.Renderer, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Store:    s,
		Profiles: profiles,
		Views:    renderer,
		Logger:   logger,
		Validate: validator.New(),
	}
}

func (h *ApplicationHandler) logEntry(c *fiber.Ctx) *logrus.Entry {
	return h.Logger.WithField("request_id", middleware.RequestID(c))
}

// report sends err to Sentry when the request runs under the Sentry middleware.
func (h *ApplicationHandler) report(c *fiber.Ctx, err error) {
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

// parseID reads the uuid route parameter name.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(utils.SanitizeInput(c.Params(name)))
}

// parseBody decodes the JSON body into dst and validates it.
// It writes the 400 response itself and reports whether the caller may continue.
func (h *ApplicationHandler) parseBody(c *fiber.Ctx, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		h.logEntry(c).WithError(err).Warn("Error parsing request body")
		return false, utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse request JSON: "+err.Error())
	}
	if err := h.Validate.Struct(dst); err != nil {
		h.logEntry(c).WithError(err).Warn("Request body failed validation")
		return false, utils.RespondWithValidationError(c, err)
	}
	return true, nil
}

// storeError translates a store failure into the JSON error envelope.
func (h *ApplicationHandler) storeError(c *fiber.Ctx, err error, resource string) error {
	switch {
	case store.IsNotFound(err):
		return utils.RespondWithError(c, fiber.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrEmptyPatch):
		return utils.RespondWithError(c, fiber.StatusBadRequest, "No fields to update")
	case errors.Is(err, context.DeadlineExceeded):
		h.logEntry(c).WithError(err).Error("Store query timed out")
		h.report(c, err)
		return utils.RespondWithError(c, fiber.StatusGatewayTimeout, "Could not reach the data store in time")
	default:
		h.logEntry(c).WithError(err).Errorf("Store operation on %s failed", strings.ToLower(resource))
		h.report(c, err)
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not process "+strings.ToLower(resource)+": "+err.Error())
	}
}
