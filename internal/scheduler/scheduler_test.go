package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"billtrack/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type fakeEvaluator struct {
	mu    sync.Mutex
	calls int
	err   error
	panic bool
}

func (f *fakeEvaluator) EvaluateReminders(now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.panic {
		panic("boom")
	}
	return 0, f.err
}

func (f *fakeEvaluator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestScheduler_EvaluatesImmediatelyAndOnTicks(t *testing.T) {
	evaluator := &fakeEvaluator{}
	s := New(evaluator, 20*time.Millisecond, logger.New())

	s.Start()
	time.Sleep(70 * time.Millisecond)
	s.Stop()

	// One immediate run plus at least two ticks
	assert.GreaterOrEqual(t, evaluator.callCount(), 3)
}

func TestScheduler_SurvivesEvaluationErrors(t *testing.T) {
	evaluator := &fakeEvaluator{err: fmt.Errorf("store unreachable")}
	s := New(evaluator, 15*time.Millisecond, logger.New())

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	// The loop kept ticking despite every evaluation failing
	assert.GreaterOrEqual(t, evaluator.callCount(), 2)
}

func TestScheduler_SurvivesPanics(t *testing.T) {
	evaluator := &fakeEvaluator{panic: true}
	s := New(evaluator, 15*time.Millisecond, logger.New())

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	assert.GreaterOrEqual(t, evaluator.callCount(), 2)
}

func TestScheduler_StopHaltsTicks(t *testing.T) {
	evaluator := &fakeEvaluator{}
	s := New(evaluator, 10*time.Millisecond, logger.New())

	s.Start()
	time.Sleep(25 * time.Millisecond)
	s.Stop()

	count := evaluator.callCount()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, count, evaluator.callCount())
}

func TestScheduler_ConcurrentStartStop(t *testing.T) {
	evaluator := &fakeEvaluator{}
	s := New(evaluator, time.Hour, logger.New())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Start()
		}()
	}
	wg.Wait()

	time.Sleep(20 * time.Millisecond)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()

	// Only one loop ever ran, and it ran its immediate evaluation once
	assert.Equal(t, 1, evaluator.callCount())
}

func TestScheduler_StartTwiceIsNoop(t *testing.T) {
	evaluator := &fakeEvaluator{}
	s := New(evaluator, time.Hour, logger.New())

	s.Start()
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()
	s.Stop()

	assert.Equal(t, 1, evaluator.callCount())
}
