package gormrepo

import "time"

// DecisionRow is the persisted form of one committed decision. Action params
// are kept as a JSON blob; nothing queries inside them.
type DecisionRow struct {
	ID         uint   `gorm:"primaryKey"`
	CycleID    string `gorm:"size:64;index"`
	AgentID    string `gorm:"size:64;index:idx_decisions_agent_time"`
	Kind       string `gorm:"size:32"`
	Params     []byte
	Confidence float64
	Rationale  string
	Tier       string    `gorm:"size:16"`
	LatencyMS  int64
	DecidedAt  time.Time `gorm:"index:idx_decisions_agent_time"`
}

func (DecisionRow) TableName() string { return "decisions" }

type HealingRow struct {
	ID          uint   `gorm:"primaryKey"`
	Reason      string `gorm:"size:255"`
	Directives  []byte
	TriggeredAt time.Time `gorm:"index"`
}

func (HealingRow) TableName() string { return "healing_audit" }
