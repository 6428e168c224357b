package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pmfolio/web/models"
	"pmfolio/web/utils"
)

// CreateUserRequest defines the expected request body for creating a user.
type CreateUserRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	Username        *string `json:"username,omitempty" validate:"omitempty,min=1"`
	FullName        string  `json:"full_name" validate:"required"`
	Title           *string `json:"title,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	Location        *string `json:"location,omitempty"`
	YearsExperience *int    `json:"years_experience,omitempty" validate:"omitempty,min=0"`
	LinkedinURL     *string `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	PortfolioURL    *string `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	AvatarURL       *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// UserSuccessResponse defines the structure for a successful response for a single user.
type UserSuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    models.User `json:"data"`
}

// CreateUser godoc
// @Summary Create a user
// @Description Creates a user profile.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   user body CreateUserRequest true "User to create"
// @Success 201 {object} UserSuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [post]
func (h *ApplicationHandler) CreateUser(c *fiber.Ctx) error {
	req := new(CreateUserRequest)
	if ok, err := h.parseBody(c, req); !ok {
		return err
	}

	user, err := h.Store.CreateUser(c.UserContext(), &models.User{
		Email:           utils.SanitizeInput(req.Email),
		Username:        req.Username,
		FullName:        req.FullName,
		Title:           req.Title,
		Bio:             req.Bio,
		Location:        req.Location,
		YearsExperience: req.YearsExperience,
		LinkedinURL:     req.LinkedinURL,
		PortfolioURL:    req.PortfolioURL,
		AvatarURL:       req.AvatarURL,
	})
	if err != nil {
		return h.storeError(c, err, "User")
	}

	h.logEntry(c).WithField("user_id", user.ID).Info("User created successfully")
	return utils.RespondWithJSON(c, fiber.StatusCreated, "User created successfully", user)
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce  json
// @Param   id path string true "User ID"
// @Success 200 {object} UserSuccessResponse
// @Failure 400 {object} ErrorResponse "Malformed id"
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *ApplicationHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}
	user, err := h.Store.GetUserByID(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err, "User")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "User retrieved successfully", user)
}

// UpdateUser godoc
// @Summary Update a user
// @Description Applies a partial update to the user's profile fields.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   id path string true "User ID"
// @Param   patch body models.UserPatch true "Fields to change"
// @Success 200 {object} UserSuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /users/{id} [patch]
func (h *ApplicationHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}
	patch := new(models.UserPatch)
	if ok, err := h.parseBody(c, patch); !ok {
		return err
	}
	user, err := h.Store.UpdateUser(c.UserContext(), id, *patch)
	if err != nil {
		return h.storeError(c, err, "User")
	}
	h.logEntry(c).WithField("user_id", id).Info("User updated successfully")
	return utils.RespondWithJSON(c, fiber.StatusOK, "User updated successfully", user)
}
