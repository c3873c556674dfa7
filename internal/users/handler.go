package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interviewiq-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.create)
	rg.GET("/users/:id", h.get)
}

type createRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			respond.Error(c, http.StatusConflict, "conflict", "email already registered", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}

	c.Set("userId", user.ID)
	respond.JSON(c, http.StatusCreated, user)
}

func (h *Handler) get(c *gin.Context) {
	userID := c.Param("id")
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	c.Set("userId", user.ID)
	respond.JSON(c, http.StatusOK, user)
}
