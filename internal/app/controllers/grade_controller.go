package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/app/services"
	"github.com/odemir/studentbook/internal/middleware"
)

// GradeController handles grade operations on student records
type GradeController struct {
	gradeService services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService services.GradeService) *GradeController {
	return &GradeController{
		gradeService: gradeService,
	}
}

// AddGrade attaches a grade to a student record
// @Summary Add a grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student record ID"
// @Param request body dto.GradeRequest true "Grade data"
// @Success 201 {object} dto.APIResponse{data=models.Grade} "Grade added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student record not found"
// @Router /students/{id}/grades [post]
func (c *GradeController) AddGrade(ctx *gin.Context) {
	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grade, err := c.gradeService.Add(ctx, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      grade,
		Timestamp: time.Now(),
	})
}

// ListGrades returns the grades of a student record
// @Summary List grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student record ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Grade} "Grades"
// @Failure 404 {object} dto.ErrorResponse "Student record not found"
// @Router /students/{id}/grades [get]
func (c *GradeController) ListGrades(ctx *gin.Context) {
	grades, err := c.gradeService.List(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      grades,
		Timestamp: time.Now(),
	})
}

// UpdateGrade rewrites an existing grade
// @Summary Update a grade
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gradeId path string true "Grade ID"
// @Param request body dto.GradeRequest true "Grade data"
// @Success 200 {object} dto.APIResponse{data=models.Grade} "Grade updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{gradeId} [put]
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grade, err := c.gradeService.Update(ctx, ctx.Param("gradeId"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      grade,
		Timestamp: time.Now(),
	})
}

// DeleteGrade removes a grade
// @Summary Delete a grade
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param gradeId path string true "Grade ID"
// @Success 204 "Grade deleted"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{gradeId} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	if err := c.gradeService.Remove(ctx, ctx.Param("gradeId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, dto.APIResponse{
		Timestamp: time.Now(),
	})
}
