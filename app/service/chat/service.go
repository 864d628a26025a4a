package chat

import (
	"context"
	"faqbot/app/config"
	"faqbot/app/service/interaction"
	"faqbot/app/service/queue"
	"faqbot/app/service/resolver"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/do"
)

const cleanupInterval = time.Minute

type Service struct {
	resolver *resolver.Service
	// nil when analytics are disabled
	queueSvc   *queue.Service
	sessionTTL time.Duration
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	var queueSvc *queue.Service
	if !cfg.Analytics.Disabled {
		queueSvc = do.MustInvoke[*queue.Service](di)
	}

	return NewService(do.MustInvoke[*resolver.Service](di), queueSvc, cfg.Chat.SessionTTL), nil
}

func NewService(resolverSvc *resolver.Service, queueSvc *queue.Service, sessionTTL time.Duration) *Service {
	return &Service{
		resolver:   resolverSvc,
		queueSvc:   queueSvc,
		sessionTTL: sessionTTL,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// Ask runs one chat turn for the session. With analytics enabled it returns
// only after the turn is in the interaction log; a failed write is logged and the reply still returned.
func (s *Service) Ask(ctx context.Context, sessionID, text string) Reply {
	session := s.session(sessionID)

	result := s.resolver.Resolve(text)
	now := s.now()

	session.mu.Lock()
	session.history.addUser(text)
	session.history.addAssistant(result.Answer, result.Category)
	session.lastSeen = now
	session.mu.Unlock()

	if s.queueSvc != nil {
		if err := s.queueSvc.Add(ctx, interaction.NewRecord(now, text, result.Category)); err != nil {
			slog.Error("Failed to record interaction",
				"text", text,
				"category", result.Category,
				"error", err)
		}
	}

	slog.Info("Answered question",
		"text", text,
		"normalized", result.Normalized,
		"category", result.Category,
		"question", result.Question)

	return Reply{
		Answer:   result.Answer,
		Category: result.Category,
		Badge:    result.Category.Badge(),
	}
}

// History returns the session messages, starting with the welcome message.
func (s *Service) History(sessionID string) []Message {
	session := s.session(sessionID)

	session.mu.Lock()
	defer session.mu.Unlock()

	return session.history.snapshot()
}

// Reset starts the session over from the welcome message.
func (s *Service) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
}

func (s *Service) session(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		session = &Session{history: newChatHistory()}
		s.sessions[id] = session
	}

	session.mu.Lock()
	session.lastSeen = s.now()
	session.mu.Unlock()

	return session
}

func (s *Service) RunCleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *Service) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline := s.now().Add(-s.sessionTTL)
	evicted := 0

	for id, session := range s.sessions {
		session.mu.Lock()
		idle := session.lastSeen.Before(deadline)
		session.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		slog.Debug("Evicted idle chat sessions", "count", evicted, "remaining", len(s.sessions))
	}

	return evicted
}
