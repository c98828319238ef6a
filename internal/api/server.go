package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/axion/internal/outreach"
	"github.com/MikeSquared-Agency/axion/internal/store"
	"github.com/MikeSquared-Agency/axion/internal/visitor"
)

type ChatService interface {
	Reply(ctx context.Context, message string) string
}

type VisitorService interface {
	Log(ctx context.Context, sub visitor.Submission) (store.Record, error)
}

type OutreachService interface {
	Run(ctx context.Context, req outreach.ContactRequest) outreach.Report
}

type Options struct {
	Port          int
	RedirectURL   string
	CORSOrigins   []string
	ChatRateLimit float64
	ChatRateBurst int
}

type Server struct {
	router      *chi.Mux
	http        *http.Server
	chat        ChatService
	visitors    VisitorService
	contacts    OutreachService
	redirectURL string
	logger      *slog.Logger
}

func NewServer(opts Options, chat ChatService, visitors VisitorService, contacts OutreachService, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(CORS(opts.CORSOrigins))

	s := &Server{
		router:      router,
		chat:        chat,
		visitors:    visitors,
		contacts:    contacts,
		redirectURL: opts.RedirectURL,
		logger:      logger,
	}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	router.Get("/health", s.health)
	router.With(RateLimit(opts.ChatRateLimit, opts.ChatRateBurst)).Post("/chat", s.handleChat)
	router.Post("/log-visitor", s.handleLogVisitor)
	router.Post("/contact-outreach", s.handleContactOutreach)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
