package api

import (
	"context"
	_ "embed"
	"errors"
	"faqbot/app/config"
	"faqbot/app/service/chat"
	"faqbot/app/service/interaction"
	"faqbot/app/service/knowledge"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

//go:embed static/index.html
var indexHTML []byte

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg     *config.Config
	kb      *knowledge.Base
	chatSvc *chat.Service
	// nil when analytics are disabled
	log      interaction.Log
	validate *validator.Validate

	app *fiber.App
}

func New(di *do.Injector) (*Server, error) {
	cfg := do.MustInvoke[*config.Config](di)

	var log interaction.Log
	if !cfg.Analytics.Disabled {
		log = do.MustInvoke[*interaction.FileLog](di)
	}

	return NewServer(cfg, do.MustInvoke[*knowledge.Base](di), do.MustInvoke[*chat.Service](di), log), nil
}

func NewServer(cfg *config.Config, kb *knowledge.Base, chatSvc *chat.Service, log interaction.Log) *Server {
	s := &Server{
		cfg:      cfg,
		kb:       kb,
		chatSvc:  chatSvc,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.HTTP.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	s.app.Use(fiberrecover.New())
	s.app.Use(requestLogger)

	s.app.Get("/", s.handleIndex)

	apiGroup := s.app.Group("/api")
	apiGroup.Get("/questions", s.handleQuestions)

	chatGroup := apiGroup.Group("/chat", s.sessionMiddleware)
	chatGroup.Get("/", s.handleHistory)
	chatGroup.Post("/", s.handleAsk)
	chatGroup.Delete("/", s.handleReset)

	analyticsGroup := apiGroup.Group("/analytics", s.analyticsEnabled)
	analyticsGroup.Get("/", s.handleAnalytics)
	analyticsGroup.Delete("/", s.handleClearAnalytics)

	return s
}

// Run serves HTTP until ctx is done, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", s.cfg.HTTP.Listen)
		return s.app.Listen(s.cfg.HTTP.Listen)
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return s.app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
