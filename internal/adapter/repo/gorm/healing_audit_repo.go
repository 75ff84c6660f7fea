package gormrepo

import (
	"context"
	"encoding/json"

	"wardmind/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HealingAuditRepo struct {
	db *gorm.DB
}

func NewHealingAuditRepo(db *gorm.DB) HealingAuditRepo {
	return HealingAuditRepo{db: db}
}

func (r HealingAuditRepo) Append(ctx context.Context, rec ports.HealingRecord) error {
	directives, _ := json.Marshal(rec.Directives)
	row := HealingRow{
		Reason:      rec.Reason,
		Directives:  directives,
		TriggeredAt: rec.TriggeredAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r HealingAuditRepo) List(ctx context.Context, limit int) ([]ports.HealingRecord, error) {
	rows := []HealingRow{}
	query := r.db.WithContext(ctx).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "triggered_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.HealingRecord, 0, len(rows))
	for _, row := range rows {
		var directives []string
		if len(row.Directives) > 0 {
			_ = json.Unmarshal(row.Directives, &directives)
		}
		out = append(out, ports.HealingRecord{
			Reason:      row.Reason,
			Directives:  directives,
			TriggeredAt: row.TriggeredAt,
		})
	}
	return out, nil
}
