package user

import "context"

// Repository describes user points persistence needs from use cases.
type Repository interface {
	GetPoints(ctx context.Context, userID string) (int, bool, error)
	SetPoints(ctx context.Context, userID string, points int) error
	// IncrementPoints adds delta to the stored counter in one atomic step and returns the new value.
	IncrementPoints(ctx context.Context, userID string, delta int) (int, error)
}
