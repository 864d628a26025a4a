package recorder

import (
	"context"
	"faqbot/app/service/interaction"
	"faqbot/app/service/queue"
	"log/slog"

	"github.com/samber/do"
)

// Service is the only writer of the interaction log.
type Service struct {
	queueSvc *queue.Service
	log      interaction.Log
}

func New(di *do.Injector) (*Service, error) {
	return NewRecorder(
		do.MustInvoke[*queue.Service](di),
		do.MustInvoke[*interaction.FileLog](di),
	), nil
}

func NewRecorder(queueSvc *queue.Service, log interaction.Log) *Service {
	return &Service{
		queueSvc: queueSvc,
		log:      log,
	}
}

// Run appends queued records until ctx is done or the queue is closed.
// On exit the queue is closed and jobs already buffered are still written.
func (s *Service) Run(ctx context.Context) {
	defer s.drain()
	defer s.queueSvc.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.queueSvc.Closed():
			return
		case job := <-s.queueSvc.Channel():
			s.write(job)
		}
	}
}

func (s *Service) drain() {
	for {
		select {
		case job := <-s.queueSvc.Channel():
			s.write(job)
		default:
			return
		}
	}
}

func (s *Service) write(job queue.Job) {
	err := s.log.Append(job.Record)
	if err != nil {
		slog.Error("Failed to append interaction",
			"question", job.Record.Question,
			"match_type", job.Record.MatchType,
			"error", err)
	}

	job.Done(err)
}
