package interviews

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interviewiq-backend/internal/resumes"
	"interviewiq-backend/internal/shared/server/respond"
	"interviewiq-backend/internal/users"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interviews", h.create)
	rg.GET("/interviews/:id", h.get)
	rg.GET("/interviews/user/:userId", h.list)
	rg.POST("/interviews/:id/start", h.start)
	rg.POST("/interviews/:id/submit-answer", h.submitAnswer)
	rg.POST("/interviews/:id/end", h.end)
	rg.POST("/interviews/:id/cancel", h.cancel)
}

type createRequest struct {
	UserID   string `json:"userId"`
	ResumeID string `json:"resumeId"`
	Title    string `json:"title"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	c.Set("userId", req.UserID)
	c.Set("resumeId", req.ResumeID)

	iv, err := h.Svc.Create(c.Request.Context(), req.UserID, req.ResumeID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "userId, resumeId and title are required", nil)
		case errors.Is(err, users.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
		case errors.Is(err, resumes.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create interview", nil)
		}
		return
	}

	c.Set("interviewId", iv.ID)
	respond.JSON(c, http.StatusCreated, iv)
}

func (h *Handler) get(c *gin.Context) {
	interviewID := c.Param("id")
	view, err := h.Svc.Get(c.Request.Context(), interviewID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "interview not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch interview", nil)
		return
	}

	c.Set("interviewId", view.Interview.ID)
	c.Set("userId", view.Interview.UserID)
	respond.JSON(c, http.StatusOK, view)
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
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list interviews", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, list)
}

func (h *Handler) start(c *gin.Context) {
	interviewID := c.Param("id")
	c.Set("interviewId", interviewID)

	iv, err := h.Svc.Start(c.Request.Context(), interviewID)
	if err != nil {
		h.lifecycleError(c, err, "failed to start interview")
		return
	}

	c.Set("userId", iv.UserID)
	c.Set("statusTransition", StatusCreated+"->"+StatusInProgress)
	respond.JSON(c, http.StatusOK, iv)
}

type submitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	AnswerText string `json:"answerText"`
	AudioPath  string `json:"audioFilePath"`
	Duration   *int   `json:"duration"`
}

func (h *Handler) submitAnswer(c *gin.Context) {
	interviewID := c.Param("id")
	c.Set("interviewId", interviewID)

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ans, err := h.Svc.SubmitAnswer(c.Request.Context(), interviewID, Submission{
		QuestionID: req.QuestionID,
		AnswerText: req.AnswerText,
		AudioPath:  req.AudioPath,
		Duration:   req.Duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "questionId and answerText are required", nil)
		case errors.Is(err, resumes.ErrQuestionNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "question not found", nil)
		case errors.Is(err, ErrQuestionMismatch):
			respond.Error(c, http.StatusConflict, "question_mismatch", "question does not belong to this interview", nil)
		default:
			h.lifecycleError(c, err, "failed to submit answer")
		}
		return
	}

	respond.JSON(c, http.StatusCreated, ans)
}

func (h *Handler) end(c *gin.Context) {
	interviewID := c.Param("id")
	c.Set("interviewId", interviewID)

	iv, err := h.Svc.End(c.Request.Context(), interviewID)
	if err != nil {
		h.lifecycleError(c, err, "failed to end interview")
		return
	}

	c.Set("userId", iv.UserID)
	c.Set("statusTransition", StatusInProgress+"->"+StatusCompleted)
	respond.JSON(c, http.StatusOK, iv)
}

func (h *Handler) cancel(c *gin.Context) {
	interviewID := c.Param("id")
	c.Set("interviewId", interviewID)

	iv, err := h.Svc.Cancel(c.Request.Context(), interviewID)
	if err != nil {
		h.lifecycleError(c, err, "failed to cancel interview")
		return
	}

	c.Set("userId", iv.UserID)
	c.Set("statusTransition", "->"+StatusCancelled)
	respond.JSON(c, http.StatusOK, iv)
}

func (h *Handler) lifecycleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "interview not found", nil)
	case errors.Is(err, ErrAlreadyStarted):
		respond.Error(c, http.StatusConflict, "already_started", "interview already started", nil)
	case errors.Is(err, ErrNotStarted):
		respond.Error(c, http.StatusConflict, "not_started", "interview has not been started", nil)
	case errors.Is(err, ErrInterviewFinished):
		respond.Error(c, http.StatusConflict, "interview_finished", "interview already finished", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
