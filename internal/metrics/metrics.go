package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts page activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	RoundsStarted   prometheus.Counter
	Reveals         *prometheus.CounterVec
	GamesFinished   prometheus.Counter
	QuizSubmissions *prometheus.CounterVec
	FeedbackSent    prometheus.Counter
	ActivePages     prometheus.Gauge
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RoundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eras_rounds_started_total",
			Help: "Minigame rounds started",
		}),
		Reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eras_round_reveals_total",
			Help: "Minigame rounds revealed, by outcome",
		}, []string{"outcome"}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eras_games_finished_total",
			Help: "Minigames played to the end",
		}),
		QuizSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eras_quiz_submissions_total",
			Help: "Quiz submissions, by result",
		}, []string{"result"}),
		FeedbackSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eras_feedback_sent_total",
			Help: "Feedback ratings accepted",
		}),
		ActivePages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "eras_active_pages",
			Help: "Connected page sessions",
		}),
		RequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		}, []string{"method", "endpoint"}),
	}
	reg.MustRegister(
		m.RoundsStarted,
		m.Reveals,
		m.GamesFinished,
		m.QuizSubmissions,
		m.FeedbackSent,
		m.ActivePages,
		m.RequestCounter,
		m.RequestDuration,
	)
	return m
}

func (m *Metrics) RoundStarted() {
	if m != nil {
		m.RoundsStarted.Inc()
	}
}

// RoundRevealed records a reveal as correct, wrong or timeout.
func (m *Metrics) RoundRevealed(correct, timedOut bool) {
	if m == nil {
		return
	}
	outcome := "wrong"
	switch {
	case correct:
		outcome = "correct"
	case timedOut:
		outcome = "timeout"
	}
	m.Reveals.WithLabelValues(outcome).Inc()
}

func (m *Metrics) GameFinished() {
	if m != nil {
		m.GamesFinished.Inc()
	}
}

// QuizSubmitted records "graded" or "nudged".
func (m *Metrics) QuizSubmitted(result string) {
	if m != nil {
		m.QuizSubmissions.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Feedback() {
	if m != nil {
		m.FeedbackSent.Inc()
	}
}

func (m *Metrics) PageOpened() {
	if m != nil {
		m.ActivePages.Inc()
	}
}

func (m *Metrics) PageClosed() {
	if m != nil {
		m.ActivePages.Dec()
	}
}

// Middleware counts requests and their latency per endpoint.
func (m *Metrics) Middleware(endpoint string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.RequestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
