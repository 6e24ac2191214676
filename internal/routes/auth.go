package routes

import (
	"net/http"

	"github.com/bielborgesc/piggino/internal/contracts"
	"github.com/bielborgesc/piggino/internal/domain/auth"
	"github.com/bielborgesc/piggino/internal/domain/user"
	appErrors "github.com/bielborgesc/piggino/internal/errors"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req contracts.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	newUser := &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	if err := h.AuthService.Register(c.Request.Context(), newUser); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, newUser)
}

func (h *Handler) Login(c *gin.Context) {
	var req contracts.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.AuthService.Login(c.Request.Context(), auth.Login{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, entity)
}

func (h *Handler) GoogleLogin(c *gin.Context) {
	var req contracts.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	entity, err := h.AuthService.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, entity)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, entity *user.User) {
	token, err := h.JwtService.GenerateToken(entity)
	if err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	c.JSON(status, contracts.AuthResponse{
		Token: token,
		User:  toUserResponse(entity),
	})
}
