package subscription

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestIsGracePeriodEnded(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		endsAt *time.Time
		want   bool
	}{
		{
			name:   "no grace period never ends",
			endsAt: nil,
			want:   false,
		},
		{
			name:   "window still open",
			endsAt: lo.ToPtr(now.Add(time.Hour)),
			want:   false,
		},
		{
			name:   "window expired",
			endsAt: lo.ToPtr(now.Add(-time.Hour)),
			want:   true,
		},
		{
			name:   "boundary instant counts as ended",
			endsAt: lo.ToPtr(now),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{GracePeriodEndsAt: tt.endsAt}
			assert.Equal(t, tt.want, sub.IsGracePeriodEnded(now))
		})
	}
}
