package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	service "github.com/gokcika/project-scoring-system/service"
)

// ProjectController manages HTTP requests for project intake and queue reads.
type ProjectController struct {
	service *service.ProjectService
}

// NewProjectController initializes the controller with the service
func NewProjectController(service *service.ProjectService) *ProjectController {
	return &ProjectController{service}
}

// SubmitProject handles the intake questionnaire submission
func (c *ProjectController) SubmitProject(ctx *gin.Context) {
	var input service.SubmitProjectInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.service.SubmitProject(input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Project submitted and scored successfully",
		"project": project,
	})
}

// GetProjects retrieves the active queue, optionally filtered by status
func (c *ProjectController) GetProjects(ctx *gin.Context) {
	status := ctx.Query("status")

	projects, err := c.service.GetProjects(status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GetProject retrieves a single project by id
func (c *ProjectController) GetProject(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	project, err := c.service.GetProject(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

// UpdateResourcePlan sets the reviewer-supplied resource answers and re-scores
func (c *ProjectController) UpdateResourcePlan(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request struct {
		Approach     string   `json:"approach" binding:"required"`
		ExternalDeps []string `json:"external_deps"`
	}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.service.UpdateResourcePlan(id, request.Approach, request.ExternalDeps)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Resource plan updated",
		"project": project,
	})
}

// GetDashboard returns queue statistics
func (c *ProjectController) GetDashboard(ctx *gin.Context) {
	log.Println("ProjectController: Fetching dashboard statistics")

	stats, err := c.service.GetStatistics()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// parseID reads the :id route parameter, replying 400 on garbage.
func parseID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id: " + raw})
		return 0, false
	}
	return uint(id), true
}

// respondError maps service errors onto HTTP statuses: validation failures
// carry their reason code at 400, missing records 404, anything else is a
// transient persistence failure the caller may retry.
func respondError(ctx *gin.Context, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"code":  validationErr.Code,
		})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":     err.Error(),
		"transient": true,
	})
}
