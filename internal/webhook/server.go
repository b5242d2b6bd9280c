package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// SecretHeader carries the webhook secret token on every update Telegram delivers
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

const maxUpdateBytes = 1 << 20

// UpdateProcessor dispatches a verified update. *tele.Bot satisfies it.
type UpdateProcessor interface {
	ProcessUpdate(u tele.Update)
}

// Server is the HTTP surface of the bot
type Server struct {
	path      string
	secret    string
	processor UpdateProcessor
	logger    *zap.Logger
	startedAt time.Time
}

// NewServer creates a server that accepts updates on path when they carry secret
func NewServer(path, secret string, processor UpdateProcessor, logger *zap.Logger) *Server {
	return &Server{
		path:      path,
		secret:    secret,
		processor: processor,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Routes returns the router with base middlewares and all endpoints mounted
func (s *Server) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)

	// stop crawlers
	router.Get("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /"))
	})

	router.Get("/", s.handleStatus())
	router.Get("/healthz", s.handleHealth())
	router.Post(s.path, s.handleUpdate())

	return router
}

type statusResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

func (s *Server) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, statusResponse{
			Status: "ok",
			Uptime: time.Since(s.startedAt).Truncate(time.Second).String(),
		})
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

func (s *Server) handleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			s.logger.Warn("Rejected webhook call with invalid secret token",
				zap.String("remote_addr", r.RemoteAddr),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var update tele.Update
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBytes)).Decode(&update); err != nil {
			s.logger.Error("Failed to decode update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		s.processor.ProcessUpdate(update)
		w.WriteHeader(http.StatusOK)
	}
}

func (s *Server) authorized(r *http.Request) bool {
	got := r.Header.Get(SecretHeader)
	if got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) == 1
}

func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// requestLogger logs each request through zap
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("route", chi.RouteContext(r.Context()).RoutePattern()),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
