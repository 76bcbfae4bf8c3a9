package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/odemir/studentbook/internal/app/models/dto"
	"github.com/odemir/studentbook/internal/app/services"
)

// LookupController exposes the public graduate verification endpoint
type LookupController struct {
	lookupService services.LookupService
}

// NewLookupController creates a new LookupController
func NewLookupController(lookupService services.LookupService) *LookupController {
	return &LookupController{
		lookupService: lookupService,
	}
}

// LookupGraduate verifies a graduated student by business student ID
// @Summary Look up a graduated student
// @Description Public verification endpoint; only graduated records are returned, with a restricted field set
// @Tags lookup
// @Produce json
// @Param studentId path string true "Business student ID"
// @Success 200 {object} dto.APIResponse{data=dto.LookupResponse} "Lookup result"
// @Router /graduates/{studentId} [get]
func (c *LookupController) LookupGraduate(ctx *gin.Context) {
	resp := c.lookupService.Lookup(ctx.Request.Context(), ctx.Param("studentId"))

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      resp,
		Timestamp: time.Now(),
	})
}
