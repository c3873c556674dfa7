package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	evaluationCompletedTotal atomic.Uint64
	evaluationFailedTotal    atomic.Uint64
	resumeProcessedTotal     atomic.Uint64
	questionGenFailedTotal   atomic.Uint64
	interviewCompletedTotal  atomic.Uint64
	narrativeFailedTotal     atomic.Uint64

	evaluationDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncEvaluationCompleted increments the completed answer evaluation counter.
func IncEvaluationCompleted() {
	evaluationCompletedTotal.Add(1)
}

// IncEvaluationFailed increments the failed answer evaluation counter.
func IncEvaluationFailed() {
	evaluationFailedTotal.Add(1)
}

// IncResumeProcessed increments the processed resume counter.
func IncResumeProcessed() {
	resumeProcessedTotal.Add(1)
}

// IncQuestionGenFailed increments the failed question generation counter.
func IncQuestionGenFailed() {
	questionGenFailedTotal.Add(1)
}

// IncInterviewCompleted increments the completed interview counter.
func IncInterviewCompleted() {
	interviewCompletedTotal.Add(1)
}

// IncNarrativeFailed increments the failed narrative report counter.
func IncNarrativeFailed() {
	narrativeFailedTotal.Add(1)
}

// ObserveEvaluationDurationMs records an answer evaluation duration in milliseconds.
func ObserveEvaluationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	evaluationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "evaluation_completed_total", "Total answer evaluations completed", evaluationCompletedTotal.Load())
	writeCounter(&buf, "evaluation_failed_total", "Total answer evaluations failed", evaluationFailedTotal.Load())
	writeCounter(&buf, "resume_processed_total", "Total resumes processed", resumeProcessedTotal.Load())
	writeCounter(&buf, "question_generation_failed_total", "Total question generation failures", questionGenFailedTotal.Load())
	writeCounter(&buf, "interview_completed_total", "Total interviews completed", interviewCompletedTotal.Load())
	writeCounter(&buf, "narrative_failed_total", "Total narrative report failures", narrativeFailedTotal.Load())
	writeHistogram(&buf, "evaluation_duration_ms", "Answer evaluation duration in milliseconds", evaluationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
