package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/pick-grader/internal/domain/pick"
)

// SubmissionLocker guards one game against concurrent submissions.
type SubmissionLocker interface {
	// TryLock returns acquired=false when another holder owns key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}

// EventPublisher announces graded games to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// GradingMetrics records submission outcomes.
type GradingMetrics interface {
	ObserveSubmission(outcome string, elapsed time.Duration)
	ObserveGradedPick(betType pick.BetType, won bool)
	AddPointsAwarded(points int)
}

type noopLocker struct{}

func (noopLocker) TryLock(_ context.Context, _ string, _ time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(_ context.Context, _ string, _ any) error {
	return nil
}

type noopMetrics struct{}

func (noopMetrics) ObserveSubmission(string, time.Duration) {}
func (noopMetrics) ObserveGradedPick(pick.BetType, bool)    {}
func (noopMetrics) AddPointsAwarded(int)                    {}

func NewNoopEventPublisher() EventPublisher {
	return noopPublisher{}
}

func NewNoopGradingMetrics() GradingMetrics {
	return noopMetrics{}
}
