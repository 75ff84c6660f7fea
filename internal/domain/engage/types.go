package engage

import (
	"fmt"
	"time"
)

type Vitals struct {
	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	SP    int `json:"sp"`
	MaxSP int `json:"max_sp"`
}

type Position struct {
	Map string `json:"map"`
	X   int    `json:"x"`
	Y   int    `json:"y"`
}

type Hostile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HP         int    `json:"hp"`
	MaxHP      int    `json:"max_hp"`
	Distance   int    `json:"distance"`
	Aggressive bool   `json:"aggressive"`
}

type CarriedItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Kind   string `json:"kind"`
}

// Item kinds the evaluators care about. Anything else is opaque cargo.
const (
	ItemKindHealing    = "healing"
	ItemKindSPRestore  = "sp_restore"
	ItemKindStatusCure = "status_cure"
)

type Bystander struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Distance    int    `json:"distance"`
	PartyMember bool   `json:"party_member"`
}

// StateSnapshot is the per-cycle view of the world supplied by the external
// game-state collector. It is a value type and is never mutated after creation.
type StateSnapshot struct {
	AgentID        string        `json:"agent_id"`
	Level          int           `json:"level"`
	Vitals         Vitals        `json:"vitals"`
	Position       Position      `json:"position"`
	Weight         int           `json:"weight"`
	MaxWeight      int           `json:"max_weight"`
	StatusEffects  []string      `json:"status_effects"`
	Inventory      []CarriedItem `json:"inventory"`
	Hostiles       []Hostile     `json:"hostiles"`
	Bystanders     []Bystander   `json:"bystanders"`
	FreeStatPoints int           `json:"free_stat_points"`
	ObservedAt     time.Time     `json:"observed_at"`
}

// Ready reports whether the snapshot carries enough state to decide on.
// A zero MaxHP means the collector has not finished the login handshake yet.
func (s StateSnapshot) Ready() bool {
	return s.AgentID != "" && s.Vitals.MaxHP > 0
}

// CellKey buckets the position into loop-detection cells. Tile-exact keys
// would never repeat while walking; cell granularity catches pacing loops.
func (p Position) CellKey() string {
	return fmt.Sprintf("%s:%d:%d", p.Map, p.X/loopCellSize, p.Y/loopCellSize)
}

type ActionKind string

const (
	ActionAttack  ActionKind = "attack"
	ActionSkill   ActionKind = "skill"
	ActionMove    ActionKind = "move"
	ActionUseItem ActionKind = "item"
	ActionCommand ActionKind = "command"
	ActionTalk    ActionKind = "talk"
	ActionRest    ActionKind = "rest"
	ActionStat    ActionKind = "stat"
	ActionNone    ActionKind = "none"
)

// CandidateAction is one tier's proposal for the current cycle.
type CandidateAction struct {
	Kind       ActionKind        `json:"kind"`
	Params     map[string]string `json:"parameters"`
	Confidence float64           `json:"confidence"`
	Rationale  string            `json:"rationale"`
}

// IsZero reports whether the candidate proposes nothing at all; a populated
// ActionNone candidate is a real proposal (it carries a rationale).
func (a CandidateAction) IsZero() bool {
	return a.Kind == ""
}

type Tier string

const (
	TierReflex  Tier = "reflex"
	TierPolicy  Tier = "policy"
	TierRule    Tier = "rule"
	TierPattern Tier = "pattern"
	TierPlanner Tier = "planner"
)

// Decision is the single committed outcome of a cycle.
type Decision struct {
	Action  CandidateAction `json:"action"`
	Tier    Tier            `json:"tier_used"`
	Latency time.Duration   `json:"-"`
	CycleID string          `json:"cycle_id"`
}

type FeedbackStatus string

const (
	FeedbackSuccess FeedbackStatus = "success"
	FeedbackFailed  FeedbackStatus = "failed"
	FeedbackPartial FeedbackStatus = "partial"
)

// Feedback is the executor's post-hoc report on a committed Decision.
type Feedback struct {
	AgentID    string         `json:"agent_id"`
	CycleID    string         `json:"cycle_id"`
	Tier       Tier           `json:"tier"`
	Status     FeedbackStatus `json:"status"`
	ReasonCode string         `json:"reason_code"`
	Detail     string         `json:"detail"`
}
