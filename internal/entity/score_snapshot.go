package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ScoreSnapshot persists the outcome of one scoring run for one ticker.
// The Data column keeps the scoring inputs and the full sub-score
// breakdown, so a run can be audited later.
type ScoreSnapshot struct {
	ID             int64          `json:"id"`
	Symbol         string         `gorm:"not null;index" json:"symbol"`
	Composite      float64        `json:"composite"`
	Recommendation string         `json:"recommendation"`
	RiskVetoed     bool           `json:"risk_vetoed"`
	Data           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at"`
}

func (ScoreSnapshot) TableName() string {
	return "score_snapshots"
}
