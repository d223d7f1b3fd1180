// AngelaMos | 2026
// costs_test.go

package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextUpgrade_SpeedFromInitial(t *testing.T) {
	step, err := nextUpgrade(UpgradeMiningSpeed, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(150), step.Cost)
	assert.Equal(t, int64(15), step.Value)
}

func TestNextUpgrade_SpeedMidLadder(t *testing.T) {
	step, err := nextUpgrade(UpgradeMiningSpeed, 20)
	require.NoError(t, err)

	assert.Equal(t, int64(700), step.Cost)
	assert.Equal(t, int64(30), step.Value)
}

func TestNextUpgrade_SpeedMaxedOut(t *testing.T) {
	_, err := nextUpgrade(UpgradeMiningSpeed, 100)
	assert.ErrorIs(t, err, ErrInvalidUpgrade)
}

func TestNextUpgrade_CapacityFromInitial(t *testing.T) {
	step, err := nextUpgrade(UpgradeMiningCapacity, 50)
	require.NoError(t, err)

	assert.Equal(t, int64(200), step.Cost)
	assert.Equal(t, int64(150), step.Value)
}

func TestNextUpgrade_HoursShrink(t *testing.T) {
	step, err := nextUpgrade(UpgradeMiningHours, 4)
	require.NoError(t, err)

	assert.Equal(t, int64(250), step.Cost)
	assert.Equal(t, int64(3), step.Value)

	step, err = nextUpgrade(UpgradeMiningHours, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), step.Value)
}

func TestNextUpgrade_HoursAtMinimum(t *testing.T) {
	_, err := nextUpgrade(UpgradeMiningHours, 1)
	assert.ErrorIs(t, err, ErrInvalidUpgrade)
}

func TestNextUpgrade_UnknownTarget(t *testing.T) {
	_, err := nextUpgrade("mining_luck", 10)
	assert.ErrorIs(t, err, ErrInvalidUpgrade)
}

func TestLadders_CostsStrictlyIncrease(t *testing.T) {
	for name, ladder := range map[string][]UpgradeStep{
		UpgradeMiningSpeed:    speedLadder,
		UpgradeMiningCapacity: capacityLadder,
		UpgradeMiningHours:    hoursLadder,
	} {
		for i := 1; i < len(ladder); i++ {
			assert.Greater(
				t,
				ladder[i].Cost,
				ladder[i-1].Cost,
				"ladder %s step %d", name, i,
			)
		}
	}
}

func TestLadders_ValuesMonotonic(t *testing.T) {
	for i := 1; i < len(speedLadder); i++ {
		assert.Greater(t, speedLadder[i].Value, speedLadder[i-1].Value)
	}
	for i := 1; i < len(capacityLadder); i++ {
		assert.Greater(t, capacityLadder[i].Value, capacityLadder[i-1].Value)
	}
	for i := 1; i < len(hoursLadder); i++ {
		assert.Less(t, hoursLadder[i].Value, hoursLadder[i-1].Value)
	}
}
