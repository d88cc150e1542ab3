// Package domain contains persistence models for spot currency quotes.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SpotQuote is one USD/BRL spot quote as supplied by an operator or an
// upstream job. The engine only ever consumes the latest rate; retrieval
// policy lives outside this system.
type SpotQuote struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Rate      float64      `json:"rate" gorm:"not null"`
	Source    string       `json:"source" gorm:"type:text;not null;default:'manual'"`
	QuotedAt  time.Time    `json:"quoted_at" gorm:"not null;index"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SpotQuote) TableName() string { return "spot_quotes" }
