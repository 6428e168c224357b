package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pmfolio/web/models"
	"pmfolio/web/store"
	"pmfolio/web/utils"
)

// CreateProjectRequest defines the expected request body for creating a project.
type CreateProjectRequest struct {
	UserID           uuid.UUID            `json:"user_id" validate:"required"`
	Title            string               `json:"title" validate:"required"`
	Description      *string              `json:"description,omitempty"`
	ProblemStatement *string              `json:"problem_statement,omitempty"`
	Solution         *string              `json:"solution,omitempty"`
	Results          *string              `json:"results,omitempty"`
	TechnologiesUsed []string             `json:"technologies_used,omitempty"`
	Company          *string              `json:"company,omitempty"`
	DurationMonths   *int                 `json:"duration_months,omitempty" validate:"omitempty,min=0"`
	ProjectURL       *string              `json:"project_url,omitempty" validate:"omitempty,url"`
	ImageURLs        []string             `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	Status           models.ProjectStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Featured         bool                 `json:"featured,omitempty"`
}

// ProjectSuccessResponse defines the structure for a successful response for a single project.
type ProjectSuccessResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    models.Project `json:"data"`
}

// ProjectListSuccessResponse defines the structure for a successful response when listing projects.
type ProjectListSuccessResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Data    []models.Project `json:"data"`
}

// projectFilter reads ?status=. Empty means published, "all" lifts the filter.
func projectFilter(raw string) (store.ProjectFilter, bool) {
	raw = strings.ToLower(utils.SanitizeInput(raw))
	switch raw {
	case "":
		return store.ProjectFilter{}, true
	case "all":
		return store.ProjectFilter{AnyStatus: true}, true
	}
	status := models.ProjectStatus(raw)
	return store.ProjectFilter{Status: status}, status.Valid()
}

// CreateProject godoc
// @Summary Create a new project
// @Description Creates a project owned by user_id. Status defaults to draft.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body CreateProjectRequest true "Project to create"
// @Success 201 {object} ProjectSuccessResponse "Project created successfully"
// @Failure 400 {object} ValidationErrorResponse "Bad request if input is invalid"
// @Failure 500 {object} ErrorResponse "Internal server error if project creation fails"
// @Router /projects [post]
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	req := new(CreateProjectRequest)
	if ok, err := h.parseBody(c, req); !ok {
		return err
	}
	req.Status = req.Status.OrDefault()

	project, err := h.Store.CreateProject(c.UserContext(), &models.Project{
		UserID:           req.UserID,
		Title:            req.Title,
		Description:      req.Description,
		ProblemStatement: req.ProblemStatement,
		Solution:         req.Solution,
		Results:          req.Results,
		TechnologiesUsed: req.TechnologiesUsed,
		Company:          req.Company,
		DurationMonths:   req.DurationMonths,
		ProjectURL:       req.ProjectURL,
		ImageURLs:        req.ImageURLs,
		Status:           req.Status,
		Featured:         req.Featured,
	})
	if err != nil {
		return h.storeError(c, err, "Project")
	}

	h.logEntry(c).WithField("project_id", project.ID).Info("Project created successfully")
	return utils.RespondWithJSON(c, fiber.StatusCreated, "Project created successfully", project)
}

// GetProject godoc
// @Summary Get a project
// @Description Retrieves a project by id, whatever its status.
// @Tags projects
// @Produce  json
// @Param   id path string true "Project ID"
// @Success 200 {object} ProjectSuccessResponse
// @Failure 400 {object} ErrorResponse "Malformed id"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (h *ApplicationHandler) GetProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	project, err := h.Store.GetProjectByID(c.UserContext(), id)
	if err != nil {
		return h.storeError(c, err, "Project")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Project retrieved successfully", project)
}

// UpdateProject godoc
// @Summary Update a project
// @Description Applies a partial update; use it to publish, feature or edit a project.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path string true "Project ID"
// @Param   patch body models.ProjectPatch true "Fields to change"
// @Success 200 {object} ProjectSuccessResponse
// @Failure 400 {object} ValidationErrorResponse
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /projects/{id} [patch]
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid project ID format")
	}
	patch := new(models.ProjectPatch)
	if ok, err := h.parseBody(c, patch); !ok {
		return err
	}
	project, err := h.Store.UpdateProject(c.UserContext(), id, *patch)
	if err != nil {
		return h.storeError(c, err, "Project")
	}
	h.logEntry(c).WithField("project_id", id).Info("Project updated successfully")
	return utils.RespondWithJSON(c, fiber.StatusOK, "Project updated successfully", project)
}

// ListUserProjects godoc
// @Summary List a user's projects
// @Description Lists the user's projects newest first. status is published (default), draft or all.
// @Tags projects
// @Produce  json
// @Param   id path string true "User ID"
// @Param   status query string false "published, draft or all"
// @Success 200 {object} ProjectListSuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /users/{id}/projects [get]
func (h *ApplicationHandler) ListUserProjects(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid user ID format")
	}
	filter, ok := projectFilter(c.Query("status"))
	if !ok {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "status must be one of published, draft, all")
	}
	projects, err := h.Store.GetUserProjects(c.UserContext(), id, filter)
	if err != nil {
		return h.storeError(c, err, "Projects")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Projects retrieved successfully", projects)
}

// GetFeaturedProjects godoc
// @Summary List featured projects
// @Description Lists published, featured projects with their owners, newest first.
// @Tags projects
// @Produce  json
// @Param   limit query int false "Maximum number of projects (default 6)"
// @Success 200 {object} ProjectListSuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects/featured [get]
func (h *ApplicationHandler) GetFeaturedProjects(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", store.DefaultFeaturedLimit)
	projects, err := h.Store.GetFeaturedProjects(c.UserContext(), limit)
	if err != nil {
		return h.storeError(c, err, "Projects")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Featured projects retrieved successfully", projects)
}
