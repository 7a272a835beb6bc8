package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/gokcika/project-scoring-system/service"
)

// SaveOverrides applies reviewer score overrides and recomputes the final score
func (c *ProjectController) SaveOverrides(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request struct {
		Overrides     service.OverrideSet `json:"overrides"`
		Justification string              `json:"justification"`
		Reviewer      string              `json:"reviewer" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.service.SaveOverrides(id, request.Overrides, request.Justification, request.Reviewer)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Overrides saved",
		"project": project,
	})
}

// SubmitDecision records the reviewer's disposition
func (c *ProjectController) SubmitDecision(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request struct {
		Decision string `json:"decision" binding:"required"`
		Notes    string `json:"notes"`
		Reviewer string `json:"reviewer" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.service.SubmitDecision(id, request.Decision, request.Notes, request.Reviewer)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Decision submitted: " + request.Decision,
		"project": project,
	})
}

// DeleteProject soft-deletes a record, keeping it for audit
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request struct {
		DeletedBy string `json:"deleted_by" binding:"required"`
		Reason    string `json:"reason"`
		Confirm   bool   `json:"confirm"`
	}
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := c.service.SoftDeleteProject(id, request.DeletedBy, request.Reason, request.Confirm)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Project soft-deleted",
		"project": project,
	})
}

// RestoreProject reactivates a soft-deleted record back into triage
func (c *ProjectController) RestoreProject(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	project, err := c.service.RestoreProject(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Project restored for re-triage",
		"project": project,
	})
}
