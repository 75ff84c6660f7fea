package gormrepo

import (
	"context"
	"encoding/json"

	"wardmind/internal/app/ports"
	"wardmind/internal/domain/engage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DecisionRepo struct {
	db *gorm.DB
}

func NewDecisionRepo(db *gorm.DB) DecisionRepo {
	return DecisionRepo{db: db}
}

func (r DecisionRepo) Append(ctx context.Context, rec ports.DecisionRecord) error {
	params, _ := json.Marshal(rec.Action.Params)
	row := DecisionRow{
		CycleID:    rec.CycleID,
		AgentID:    rec.AgentID,
		Kind:       string(rec.Action.Kind),
		Params:     params,
		Confidence: rec.Action.Confidence,
		Rationale:  rec.Action.Rationale,
		Tier:       string(rec.Tier),
		LatencyMS:  rec.LatencyMS,
		DecidedAt:  rec.DecidedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r DecisionRepo) ListByAgentID(ctx context.Context, agentID string, limit int) ([]ports.DecisionRecord, error) {
	rows := []DecisionRow{}
	query := r.db.WithContext(ctx).
		Where(&DecisionRow{AgentID: agentID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "decided_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		var params map[string]string
		if len(row.Params) > 0 {
			_ = json.Unmarshal(row.Params, &params)
		}
		out = append(out, ports.DecisionRecord{
			CycleID: row.CycleID,
			AgentID: row.AgentID,
			Action: engage.CandidateAction{
				Kind:       engage.ActionKind(row.Kind),
				Params:     params,
				Confidence: row.Confidence,
				Rationale:  row.Rationale,
			},
			Tier:      engage.Tier(row.Tier),
			LatencyMS: row.LatencyMS,
			DecidedAt: row.DecidedAt,
		})
	}
	return out, nil
}
