package user

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name string
		user User
		want error
	}{
		{name: "valid", user: User{ID: "usr-ana", Name: "Ana", Points: 3}},
		{name: "missing id", user: User{ID: "  ", Name: "Ana"}, want: ErrInvalidUser},
		{name: "negative points", user: User{ID: "usr-ana", Points: -1}, want: ErrInvalidPoints},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
