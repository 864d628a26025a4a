package queue

import (
	"context"
	"errors"
	"faqbot/app/config"
	"faqbot/app/service/interaction"
	"sync"

	"github.com/samber/do"
)

var _ do.Shutdownable = (*Service)(nil)

var ErrClosed = errors.New("interaction queue is closed")

// Job is one record waiting for the log writer. The writer must call Done exactly once.
type Job struct {
	Record interaction.Record
	done   chan error
}

func (j Job) Done(err error) {
	j.done <- err
}

// Service hands interaction records from chat handlers to the log writer.
type Service struct {
	queue     chan Job
	closed    chan struct{}
	closeOnce sync.Once
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewQueue(cfg.Analytics.QueueSize), nil
}

func NewQueue(size int) *Service {
	return &Service{
		queue:  make(chan Job, size),
		closed: make(chan struct{}),
	}
}

// Add blocks until the writer has appended rec, ctx ends or the queue is closed.
func (s *Service) Add(ctx context.Context, rec interaction.Record) error {
	job := Job{Record: rec, done: make(chan error, 1)}

	select {
	case <-s.closed:
		return ErrClosed
	default:
	}

	select {
	case s.queue <- job:
	case <-s.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-job.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		// the writer may have taken the job right before closing
		select {
		case err := <-job.done:
			return err
		default:
			return ErrClosed
		}
	}
}

func (s *Service) Channel() <-chan Job {
	return s.queue
}

// Closed is done once Close has been called.
func (s *Service) Closed() <-chan struct{} {
	return s.closed
}

// Close makes pending and future Add calls fail with ErrClosed. The job channel stays open.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
	})
}

func (s *Service) Shutdown() error {
	s.Close()

	return nil
}
