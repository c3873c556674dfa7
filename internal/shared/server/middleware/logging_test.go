package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/test", func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Set("resumeId", "resume-1")
		c.Set("interviewId", "interview-1")
		c.Set("statusTransition", "created->in_progress")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = origStdout
	}()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read log output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 {
		t.Fatalf("expected log output")
	}
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "user_id", "resume_id", "interview_id", "duration_ms", "status", "status_transition"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["resume_id"] != "resume-1" {
		t.Fatalf("unexpected resume_id: %v", payload["resume_id"])
	}
	if payload["interview_id"] != "interview-1" {
		t.Fatalf("unexpected interview_id: %v", payload["interview_id"])
	}
	if payload["status_transition"] != "created->in_progress" {
		t.Fatalf("unexpected status_transition: %v", payload["status_transition"])
	}
}
