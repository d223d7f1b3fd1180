// AngelaMos | 2026
// service_test.go

package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateSponsoredTask_InvalidDuration(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.CreateSponsoredTask(
		context.Background(),
		"sponsor-1",
		CreateSponsoredTaskRequest{
			Title:        "Follow us",
			Description:  "Follow the sponsor on X",
			ZPReward:     100,
			DurationDays: 7,
		},
	)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestSponsoredCosts(t *testing.T) {
	assert.Equal(t, int64(10000), sponsoredCosts[1])
	assert.Equal(t, int64(30000), sponsoredCosts[5])
	assert.Equal(t, int64(100000), sponsoredCosts[15])
	assert.Len(t, sponsoredCosts, 3)
}

func TestTask_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	evergreen := &Task{}
	assert.False(t, evergreen.IsExpired(now))

	future := now.Add(time.Hour)
	live := &Task{ExpiresAt: &future}
	assert.False(t, live.IsExpired(now))

	past := now.Add(-time.Hour)
	expired := &Task{ExpiresAt: &past}
	assert.True(t, expired.IsExpired(now))
}
