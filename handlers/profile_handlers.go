package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"pmfolio/web/profile"
	"pmfolio/web/utils"
	"pmfolio/web/views"
)

// ProfilePageResponse is the JSON form of an assembled profile page.
type ProfilePageResponse = profile.Page

func pageStatus(state profile.State) int {
	switch state {
	case profile.StateReady:
		return fiber.StatusOK
	case profile.StateNotFound:
		return fiber.StatusNotFound
	case profile.StateIdle:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *ApplicationHandler) render(c *fiber.Ctx, status int, page string, data interface{}) error {
	var buf bytes.Buffer
	if err := h.Views.Render(&buf, page, data); err != nil {
		h.logEntry(c).WithError(err).WithField("page", page).Error("Failed to render template")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func (h *ApplicationHandler) loadProfile(c *fiber.Ctx) profile.Page {
	page := h.Profiles.Load(c.UserContext(), utils.SanitizeInput(c.Params("username")))
	if page.State == profile.StateError && page.Err != nil {
		h.report(c, page.Err)
	}
	return page
}

// LandingPage renders the home page with featured projects.
func (h *ApplicationHandler) LandingPage(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, views.PageIndex, h.Profiles.Landing(c.UserContext()))
}

// ProfilePage renders the public profile of a user.
func (h *ApplicationHandler) ProfilePage(c *fiber.Ctx) error {
	page := h.loadProfile(c)
	switch page.State {
	case profile.StateReady:
		return h.render(c, fiber.StatusOK, views.PageProfile, page)
	case profile.StateNotFound, profile.StateIdle:
		if page.Message == "" {
			page.Message = profile.MessageNotFound
		}
		return h.render(c, fiber.StatusNotFound, views.PageNotFound, page)
	default:
		return h.render(c, fiber.StatusInternalServerError, views.PageError, page)
	}
}

// GetProfile godoc
// @Summary Get an assembled profile
// @Description Resolves the route parameter to a user and returns the user with their published projects and approved recommendations.
// @Tags profiles
// @Produce  json
// @Param   username path string true "Public identifier (email slug, username or id, depending on configuration)"
// @Success 200 {object} ProfilePageResponse "Profile ready"
// @Failure 404 {object} ProfilePageResponse "User not found"
// @Failure 500 {object} ProfilePageResponse "Failed to load user profile"
// @Router /profiles/{username} [get]
func (h *ApplicationHandler) GetProfile(c *fiber.Ctx) error {
	page := h.loadProfile(c)
	return c.Status(pageStatus(page.State)).JSON(page)
}
