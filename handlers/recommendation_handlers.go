package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pmfolio/web/models"
	"pmfolio/web/store"
	"pmfolio/web/utils"
)

// CreateRecommendationRequest defines the expected request body for leaving a recommendation.
// New recommendations wait for moderation unless a status is given.
type CreateRecommendationRequest struct {
	UserID              uuid.UUID                   `json:"user_id" validate:"required"`
	ProjectID           *uuid.UUID                  `json:"project_id,omitempty"`
	RecommenderName     string                      `json:"recommender_name" validate:"required"`
	RecommenderTitle    *string                     `json:"recommender_title,omitempty"`
	RecommenderCompany  *string                     `json:"recommender_company,omitempty"`
	RecommenderLinkedin *string                     `json:"recommender_linkedin,omitempty" validate:"omitempty,url"`
	RecommendationText  string                      `json:"recommendation_text" validate:"required"`
	SkillsHighlighted   []string                    `json:"skills_highlighted,omitempty"`
	Status              models.RecommendationStatus `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected"`
}

// RecommendationSuccessResponse defines the structure for a successful response for a single recommendation.
type RecommendationSuccessResponse struct {
	Status  string                `json:"status"`
	Message string                `json:"message"`
	Data    models.Recommendation `json:"data"`
}

// RecommendationListSuccessResponse defines the structure for a successful response when listing recommendations.
type RecommendationListSuccessResponse struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Data    []models.Recommendation `json:"data"`
}

func recommendationFilter(raw string) (store.RecommendationFilter, bool) {
	raw = strings.ToLower(utils.SanitizeInput(raw))
	switch raw {
	case "":
		return store.RecommendationFilter{WithLinkedProject: true}, true
	case "all":
		return store.RecommendationFilter{AnyStatus: true, WithLinkedProject: true}, true
	}
	status := models.RecommendationStatus(raw)
	return store.RecommendationFilter{Status: status, WithLinkedProject: true}, status.Valid()
}

// CreateRecommendation godoc
// @Summary Leave a recommendation
// @Tags recommendations
// @Accept  json
// @Produce  json
// @Param   recommendation body CreateRecommendationRequest true "Recommendation to create"
// @Success 201 {object} RecommendationSuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /recommendations [post]
func (h *ApplicationHandler) CreateRecommendation(c *fiber.Ctx) error {
	req := new(CreateRecommendationRequest)
	if ok, err := h.parseBody(c, req); !ok {
		return err
	}
	req.Status = req.Status.OrDefault()

	rec, err := h.Store.CreateRecommendation(c.UserContext(), &models.Recommendation{
		UserID:              req.UserID,
		ProjectID:           req.ProjectID,
		RecommenderName:     req.RecommenderName,
		RecommenderTitle:    req.RecommenderTitle,
		RecommenderCompany:  req.RecommenderCompany,
		RecommenderLinkedin: req.RecommenderLinkedin,
		RecommendationText:  req.RecommendationText,
		SkillsHighlighted:   req.SkillsHighlighted,
		Status:              req.Status,
	})
	if err != nil {
		return h.storeError(c, err, "Recommendation")
	}

	h.logEntry(c).WithField("recommendation_id", rec.ID).Info("Recommendation created successfully")
	return utils.RespondWithJSON(c, fiber.StatusCreated, "Recommendation created successfully", rec)
}

// GetRecommendation godoc
// @Summary Get a recommendation
// @Tags recommendations
// @Produce  json
// @Param   id path string true "Recommendation ID"
// @Success 200 {object} RecommendationSuccessResponse
// @Failure 400 {object} ErrorResponse "Malformed id"
// @Failure 404 {object} ErrorResponse "Recommendation not found"
// @Router /recommendations/{id} [get]
func (h *ApplicationHandler) GetRecommendation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid recommendation ID format")
	}
	rec, err := h.Store.GetRecommendationByID(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err, "Recommendation")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Recommendation retrieved successfully", rec)
}

// UpdateRecommendation godoc
// @Summary Update or moderate a recommendation
// @Description Applies a partial update. Patch status to approve or reject.
// @Tags recommendations
// @Accept  json
// @Produce  json
// @Param   id path string true "Recommendation ID"
// @Param   patch body models.RecommendationPatch true "Fields to change"
// @Success 200 {object} RecommendationSuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse "Recommendation not found"
// @Router /recommendations/{id} [patch]
func (h *ApplicationHandler) UpdateRecommendation(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid recommendation ID format")
	}
	patch := new(models.RecommendationPatch)
	if ok, err := h.parseBody(c, patch); !ok {
		return err
	}
	rec, err := h.Store.UpdateRecommendation(c.UserContext(), id, *patch)
	if err != nil {
		return h.storeError(c, err, "Recommendation")
	}
	h.logEntry(c).WithField("recommendation_id", id).Info("Recommendation updated successfully")
	return utils.RespondWithJSON(c, fiber.StatusOK, "Recommendation updated successfully", rec)
}

// ListUserRecommendations godoc
// @Summary List a user's recommendations
// @Description Lists recommendations newest first, with the linked project. status is approved (default), pending, rejected or all.
// @Tags recommendations
// @Produce  json
// @Param   id path string true "User ID"
// @Param   status query string false "approved, pending, rejected or all"
// @Success 200 {object} RecommendationListSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/{id}/recommendations [get]
func (h *ApplicationHandler) ListUserRecommendations(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}
	filter, ok := recommendationFilter(c.Query("status"))
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "status must be one of approved, pending, rejected, all")
	}
	recs, err := h.Store.GetUserRecommendations(c.UserContext(), id, filter)
	if err != nil {
		return h.storeError(c, err, "Recommendations")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Recommendations retrieved successfully", recs)
}
