package engage

import "time"

const (
	HPCriticalRatio = 0.25
	HPLowRatio      = 0.40
	HPHealRatio     = 0.60
	SPCriticalRatio = 0.15
	SPSkillRatio    = 0.30

	WeightCriticalRatio = 0.90

	ContactRange   = 5
	AttackRange    = 8
	SafeDistance   = 5
	SwarmThreshold = 3

	PlannerLevelMilestone = 10

	loopCellSize = 8
)

const (
	DefaultBreakerFailureThreshold = 3
	DefaultBreakerResetTimeout     = 30 * time.Second

	DefaultRateLimit      = 30
	DefaultRateWindow     = 60 * time.Second
	DefaultEmergencyPause = 120 * time.Second

	DefaultLoopThreshold     = 5
	DefaultLoopWindow        = 60 * time.Second
	DefaultLoopBreakCooldown = 20 * time.Second

	DefaultPostMoveCooldown   = 2 * time.Second
	DefaultZoneChangeCooldown = 5 * time.Second

	DefaultPatternBudget      = 150 * time.Millisecond
	DefaultPlannerBudget      = 30 * time.Second
	DefaultPlannerMinInterval = 5 * time.Minute
)

// Status effects that lock the character out of normal play and warrant an
// immediate cure attempt.
var DisablingStatuses = map[string]bool{
	"stunned":     true,
	"frozen":      true,
	"stone_curse": true,
	"sleep":       true,
	"silence":     true,
}
