// Package scheduler drives the reminder evaluator on a fixed wall-clock
// interval for the lifetime of the process.
package scheduler

import (
	"sync"
	"time"

	"billtrack/pkg/logger"
)

type Evaluator interface {
	EvaluateReminders(now time.Time) (int, error)
}

// Scheduler evaluates once immediately on Start and then on every interval
// tick until Stop. A failed tick is logged and retried naturally on the next
// interval: reminder matching is date-based, so a bill due today stays a
// candidate on every tick within the same day until it is processed.
type Scheduler struct {
	evaluator Evaluator
	interval  time.Duration
	log       *logger.Logger

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

func New(evaluator Evaluator, interval time.Duration, log *logger.Logger) *Scheduler {
	return &Scheduler{
		evaluator: evaluator,
		interval:  interval,
		log:       log,
	}
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.run()
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
}

func (s *Scheduler) run() {
	defer close(s.done)

	s.log.Info("Reminder scheduler started (interval %s)", s.interval)
	s.tick()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stop:
			s.log.Info("Reminder scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) tick() {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Panic during reminder evaluation: %v", r)
		}
	}()

	emitted, err := s.evaluator.EvaluateReminders(time.Now())
	if err != nil {
		s.log.Error("Reminder evaluation failed: %v", err)
		return
	}
	if emitted > 0 {
		s.log.Info("Reminder evaluation emitted %d notification(s)", emitted)
	}
}
