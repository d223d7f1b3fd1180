// AngelaMos | 2026
// costs.go

package economy

import (
	"fmt"
)

const (
	UpgradeMiningSpeed    = "mining_speed"
	UpgradeMiningCapacity = "mining_capacity"
	UpgradeMiningHours    = "mining_hours"
)

// UpgradeStep is one rung of an upgrade ladder: pay Cost, get Value.
// For speed the value is ZP/hour, for capacity it is ZP, for hours it
// is the new (shorter) cycle length.
type UpgradeStep struct {
	Cost  int64
	Value int64
}

// Ladders are strictly ordered: each step costs more than the last, so a
// miner can never loop upgrades for free. Speed and capacity climb,
// cycle hours shrink.
var (
	speedLadder = []UpgradeStep{
		{Cost: 150, Value: 15},
		{Cost: 450, Value: 20},
		{Cost: 700, Value: 30},
		{Cost: 1000, Value: 50},
		{Cost: 2500, Value: 100},
	}

	capacityLadder = []UpgradeStep{
		{Cost: 200, Value: 150},
		{Cost: 350, Value: 300},
		{Cost: 650, Value: 700},
		{Cost: 850, Value: 1000},
		{Cost: 1350, Value: 1800},
	}

	hoursLadder = []UpgradeStep{
		{Cost: 250, Value: 3},
		{Cost: 500, Value: 2},
		{Cost: 1000, Value: 1},
	}
)

// nextUpgrade resolves the step a miner with the given current value
// would buy next. Returns ErrInvalidUpgrade for unknown targets or when
// the ladder is exhausted.
func nextUpgrade(target string, current int64) (UpgradeStep, error) {
	switch target {
	case UpgradeMiningSpeed:
		return nextAscending(speedLadder, current, target)
	case UpgradeMiningCapacity:
		return nextAscending(capacityLadder, current, target)
	case UpgradeMiningHours:
		return nextDescending(hoursLadder, current, target)
	default:
		return UpgradeStep{}, fmt.Errorf(
			"unknown upgrade target %q: %w",
			target,
			ErrInvalidUpgrade,
		)
	}
}

func nextAscending(
	ladder []UpgradeStep,
	current int64,
	target string,
) (UpgradeStep, error) {
	for _, step := range ladder {
		if step.Value > current {
			return step, nil
		}
	}
	return UpgradeStep{}, fmt.Errorf(
		"%s already at maximum level: %w",
		target,
		ErrInvalidUpgrade,
	)
}

func nextDescending(
	ladder []UpgradeStep,
	current int64,
	target string,
) (UpgradeStep, error) {
	for _, step := range ladder {
		if step.Value < current {
			return step, nil
		}
	}
	return UpgradeStep{}, fmt.Errorf(
		"%s already at minimum cycle length: %w",
		target,
		ErrInvalidUpgrade,
	)
}
