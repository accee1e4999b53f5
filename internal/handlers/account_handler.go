package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AptiPro-2025/exam-session-service/internal/models"
	"github.com/AptiPro-2025/exam-session-service/internal/services"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
)

type AccountHandler struct {
	BaseHandler
	accountService services.AccountService
}

func NewAccountHandler(accountService services.AccountService, logger utils.Logger) *AccountHandler {
	return &AccountHandler{
		BaseHandler:    NewBaseHandler(logger),
		accountService: accountService,
	}
}

// Signup registers a new viewer with the collaborator.
// @Summary Sign up
// @Tags accounts
// @Accept json
// @Produce json
// @Param form body models.SignupForm true "Signup data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /accounts/signup [post]
func (h *AccountHandler) Signup(c *gin.Context) {
	var form models.SignupForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.accountService.Signup(c.Request.Context(), &form); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Signup successful",
	})
}

// GetProfile returns the viewer's stored profile.
// @Summary Get profile
// @Tags accounts
// @Produce json
// @Param email path string true "Viewer email"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /accounts/{email}/profile [get]
func (h *AccountHandler) GetProfile(c *gin.Context) {
	email := ParseEmailParam(c)
	if email == "" {
		return
	}

	viewer, err := h.accountService.Profile(c.Request.Context(), email)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, viewer)
}

// SaveProfile stores the viewer's profile for later sessions.
// @Summary Save profile
// @Tags accounts
// @Accept json
// @Produce json
// @Param viewer body models.Viewer true "Viewer profile"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /accounts/{email}/profile [put]
func (h *AccountHandler) SaveProfile(c *gin.Context) {
	email := ParseEmailParam(c)
	if email == "" {
		return
	}

	var viewer models.Viewer
	if err := c.ShouldBindJSON(&viewer); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	viewer.Email = email

	if err := h.accountService.SaveProfile(c.Request.Context(), &viewer); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Profile saved",
	})
}
