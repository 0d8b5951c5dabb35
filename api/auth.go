package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keshster98/cashfly-backend/internal/service/users"
)

type AuthHandler struct {
	service users.UserUseCase
}

func NewAuthHandler(service users.UserUseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup, authenticated ...gin.HandlerFunc) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/me", guarded(authenticated, h.me)...)
}

func (h *AuthHandler) register(c *gin.Context) {
	var input users.RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) login(c *gin.Context) {
	var input users.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.service.Me(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
