package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odemir/studentbook/internal/app/models"
	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/app/workflow"
)

// ConsoleController exposes the per-session record console over HTTP. Every
// handler resolves the caller's console through the gate and responds with
// the full view state, so the client can always render from one payload.
type ConsoleController struct {
	gate *workflow.Gate
}

// NewConsoleController creates a new ConsoleController
func NewConsoleController(gate *workflow.Gate) *ConsoleController {
	return &ConsoleController{
		gate: gate,
	}
}

// consoleFor resolves the console bound to the calling session. The auth
// middleware redelivers the session on every request, so a missing console
// means the session is genuinely gone.
func (c *ConsoleController) consoleFor(ctx *gin.Context) (*workflow.Console, bool) {
	sessionID := ctx.GetString("sessionID")
	console, ok := c.gate.Console(sessionID)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeSessionNotFound, "Session is no longer active")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return console, true
}

// respond renders a console snapshot as the standard API envelope
func respond(ctx *gin.Context, snap workflow.Snapshot) {
	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toConsoleView(snap),
		Timestamp: time.Now(),
	})
}

// toFeedbackView converts a workflow feedback message for the response
func toFeedbackView(f *workflow.Feedback) *dto.FeedbackView {
	if f == nil {
		return nil
	}
	return &dto.FeedbackView{
		Level:   string(f.Level),
		Message: f.Message,
	}
}

// toStudentRows trims records down to the list columns
func toStudentRows(students []models.Student) []dto.StudentRowView {
	rows := make([]dto.StudentRowView, 0, len(students))
	for _, s := range students {
		row := dto.StudentRowView{
			ID:             s.ID,
			StudentID:      s.StudentID,
			FullName:       s.FullName,
			Status:         string(s.Status),
			EnrollmentYear: s.EnrollmentYear,
		}
		if s.Email != nil {
			row.Email = *s.Email
		}
		rows = append(rows, row)
	}
	return rows
}

// toConsoleView converts a console snapshot for the response
func toConsoleView(snap workflow.Snapshot) dto.ConsoleView {
	view := dto.ConsoleView{
		Mode:           string(snap.Mode),
		EditingTarget:  snap.EditingTarget,
		Students:       toStudentRows(snap.Rows),
		CreateFeedback: toFeedbackView(snap.CreateFeedback),
		ListFeedback:   toFeedbackView(snap.ListFeedback),
		EditFeedback:   toFeedbackView(snap.EditFeedback),
	}

	if snap.Mode == workflow.ModeEditing {
		view.EditForm = &dto.EditFormView{
			StudentID:      snap.EditStudentID,
			FullName:       snap.EditForm.FullName,
			DateOfBirth:    snap.EditForm.DateOfBirth,
			Gender:         snap.EditForm.Gender,
			Address:        snap.EditForm.Address,
			PhoneNumber:    snap.EditForm.PhoneNumber,
			Email:          snap.EditForm.Email,
			EnrollmentYear: snap.EditForm.EnrollmentYear,
			Status:         snap.EditForm.Status,
			GraduationYear: snap.EditForm.GraduationYear,
		}
	}

	if snap.CreateForm != (workflow.StudentForm{}) {
		view.CreateForm = &dto.StudentFormRequest{
			StudentID:      snap.CreateForm.StudentID,
			FullName:       snap.CreateForm.FullName,
			DateOfBirth:    snap.CreateForm.DateOfBirth,
			Gender:         snap.CreateForm.Gender,
			Address:        snap.CreateForm.Address,
			PhoneNumber:    snap.CreateForm.PhoneNumber,
			Email:          snap.CreateForm.Email,
			EnrollmentYear: snap.CreateForm.EnrollmentYear,
			Status:         snap.CreateForm.Status,
			GraduationYear: snap.CreateForm.GraduationYear,
		}
	}

	return view
}

// toStudentForm converts a request body into the workflow form
func toStudentForm(req dto.StudentFormRequest) workflow.StudentForm {
	return workflow.StudentForm{
		StudentID:      req.StudentID,
		FullName:       req.FullName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		EnrollmentYear: req.EnrollmentYear,
		Status:         req.Status,
		GraduationYear: req.GraduationYear,
	}
}

// toEditForm converts a request body into the workflow edit form
func toEditForm(req dto.EditStudentFormRequest) workflow.EditForm {
	return workflow.EditForm{
		FullName:       req.FullName,
		DateOfBirth:    req.DateOfBirth,
		Gender:         req.Gender,
		Address:        req.Address,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		EnrollmentYear: req.EnrollmentYear,
		Status:         req.Status,
		GraduationYear: req.GraduationYear,
	}
}

// GetState returns the current console state
// @Summary Get console state
// @Tags console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console [get]
func (c *ConsoleController) GetState(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	respond(ctx, console.Snapshot())
}

// CreateRecord submits the create form
// @Summary Create a student record
// @Description Validates the form and writes a new record; the list is reloaded on success
// @Tags console
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.StudentFormRequest true "Student form values"
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state after the attempt"
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console/records [post]
func (c *ConsoleController) CreateRecord(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	var req dto.StudentFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	respond(ctx, console.Create(ctx.Request.Context(), toStudentForm(req)))
}

// RefreshRecords reloads the record list
// @Summary Reload the record list
// @Tags console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console/refresh [post]
func (c *ConsoleController) RefreshRecords(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	respond(ctx, console.Refresh(ctx.Request.Context()))
}

// SearchRecords filters the record list
// @Summary Search student records
// @Description Filters the list by name or business student ID; an empty term reloads everything
// @Tags console
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search term"
// @Param by query string false "Field to search: name or id" default(name)
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console/records [get]
func (c *ConsoleController) SearchRecords(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	term := ctx.Query("search")
	by := ctx.DefaultQuery("by", "name")

	respond(ctx, console.Search(ctx.Request.Context(), term, by))
}

// BeginEdit opens a record for editing
// @Summary Open a record for editing
// @Description Loads the record into the edit form and hides create form and list
// @Tags console
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console/records/{id}/edit [post]
func (c *ConsoleController) BeginEdit(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	respond(ctx, console.BeginEdit(ctx.Request.Context(), ctx.Param("id")))
}

// SubmitEdit submits the edit form for the record being edited
// @Summary Update the record being edited
// @Description Writes the edit form to the open record; the student ID is never changed
// @Tags console
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EditStudentFormRequest true "Edit form values"
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state after the attempt"
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console/edit [put]
func (c *ConsoleController) SubmitEdit(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	var req dto.EditStudentFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid form data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	respond(ctx, console.SubmitEdit(ctx.Request.Context(), toEditForm(req)))
}

// CancelEdit abandons the edit form
// @Summary Cancel editing
// @Tags console
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console/edit/cancel [post]
func (c *ConsoleController) CancelEdit(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	respond(ctx, console.CancelEdit())
}

// DeleteRecord removes a record after confirmation
// @Summary Delete a student record
// @Description Requires confirm=true; without it nothing is removed
// @Tags console
// @Produce json
// @Security BearerAuth
// @Param id path string true "Record ID"
// @Param confirm query bool false "Deletion confirmation" default(false)
// @Success 200 {object} dto.APIResponse{data=dto.ConsoleView} "Console state after the attempt"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /console/records/{id} [delete]
func (c *ConsoleController) DeleteRecord(ctx *gin.Context) {
	console, ok := c.consoleFor(ctx)
	if !ok {
		return
	}

	confirmed := ctx.Query("confirm") == "true"
	respond(ctx, console.Delete(ctx.Request.Context(), ctx.Param("id"), confirmed))
}
