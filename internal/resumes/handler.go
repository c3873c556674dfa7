package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interviewiq-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes/:id", h.get)
	rg.GET("/resumes/user/:userId", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	userID := c.PostForm("userId")
	if userID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return
	}
	c.Set("userId", userID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	resume, questions, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrUserNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process resume", nil)
		}
		return
	}

	c.Set("resumeId", resume.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"resume":    resume,
		"questions": questionsPayload(questions),
	})
}

func (h *Handler) get(c *gin.Context) {
	resumeID := c.Param("id")
	resume, questions, err := h.Svc.Get(c.Request.Context(), resumeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	c.Set("resumeId", resume.ID)
	c.Set("userId", resume.UserID)
	respond.JSON(c, http.StatusOK, gin.H{
		"resume":    resume,
		"questions": questionsPayload(questions),
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := c.Param("userId")
	c.Set("userId", userID)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		}
		return
	}

	resp := make([]gin.H, 0, len(list))
	for _, resume := range list {
		resp = append(resp, gin.H{
			"resumeId":   resume.ID,
			"fileName":   resume.FileName,
			"mimeType":   resume.MimeType,
			"uploadedAt": resume.CreatedAt,
		})
	}
	respond.JSON(c, http.StatusOK, resp)
}

func questionsPayload(questions []Question) []gin.H {
	out := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		out = append(out, gin.H{
			"questionId":      q.ID,
			"position":        q.Position,
			"questionType":    q.Type,
			"difficultyLevel": q.Difficulty,
			"questionText":    q.Text,
		})
	}
	return out
}
