package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloudcare/helpdesk/internal/application/auth/dto"
	"github.com/cloudcare/helpdesk/internal/application/auth/usecases"
	"github.com/cloudcare/helpdesk/internal/shared/logger"
	"github.com/cloudcare/helpdesk/internal/shared/utils"
)

type AuthHandler struct {
	registerUC       registerUseCase
	loginUC          loginUseCase
	refreshTokenUC   refreshTokenUseCase
	logoutUC         logoutUseCase
	getCurrentUserUC getCurrentUserUseCase
	changePasswordUC changePasswordUseCase
	logger           logger.Interface
}

func NewAuthHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	refreshTokenUC refreshTokenUseCase,
	logoutUC logoutUseCase,
	getCurrentUserUC getCurrentUserUseCase,
	changePasswordUC changePasswordUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC:       registerUC,
		loginUC:          loginUC,
		refreshTokenUC:   refreshTokenUC,
		logoutUC:         logoutUC,
		getCurrentUserUC: getCurrentUserUC,
		changePasswordUC: changePasswordUC,
		logger:           logger,
	}
}

// Register godoc
//
//	@Summary	Register a new account
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.RegisterRequest	true	"Account details"
//	@Success	201		{object}	utils.APIResponse{data=dto.UserResponse}
//	@Failure	409		{object}	utils.APIResponse
//	@Failure	422		{object}	utils.APIResponse
//	@Router		/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User registered successfully")
}

// Login godoc
//
//	@Summary	Log in with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	utils.APIResponse{data=dto.TokenResponse}
//	@Failure	401		{object}	utils.APIResponse
//	@Failure	429		{object}	utils.APIResponse
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// RefreshToken godoc
//
//	@Summary	Rotate a refresh token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.RefreshTokenRequest	true	"Refresh token"
//	@Success	200		{object}	utils.APIResponse{data=dto.TokenResponse}
//	@Failure	401		{object}	utils.APIResponse
//	@Router		/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.refreshTokenUC.Execute(c.Request.Context(), usecases.RefreshTokenCommand{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", result)
}

// Logout godoc
//
//	@Summary	Revoke a refresh token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.RefreshTokenRequest	true	"Refresh token"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{RefreshToken: req.RefreshToken}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// GetCurrentUser godoc
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse{data=dto.UserResponse}
//	@Failure	401	{object}	utils.APIResponse
//	@Router		/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, _, err := utils.GetAuthIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getCurrentUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ChangePassword godoc
//
//	@Summary		Change the current password
//	@Description	Revokes every refresh token of the account.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		dto.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse
//	@Router			/auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, _, err := utils.GetAuthIdentity(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	err = h.changePasswordUC.Execute(c.Request.Context(), usecases.ChangePasswordCommand{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}
