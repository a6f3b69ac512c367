package user

import (
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidUser   = errors.New("invalid user")
	ErrInvalidPoints = errors.New("user points must be >= 0")
)

// User is a pick owner with an accumulated points counter.
type User struct {
	ID     string
	Name   string
	Points int
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return errors.Wrap(ErrInvalidUser, "id is required")
	}
	if err := ValidatePoints(u.Points); err != nil {
		return errors.Wrapf(err, "user=%s", u.ID)
	}
	return nil
}

// ValidatePoints guards absolute writes; increments are unrestricted.
func ValidatePoints(points int) error {
	if points < 0 {
		return errors.Wrapf(ErrInvalidPoints, "got %d", points)
	}
	return nil
}
