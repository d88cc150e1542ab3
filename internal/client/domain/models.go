// Package domain contains persistence models for importing clients.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Client is an importing customer a proforma invoice is issued to.
type Client struct {
	ID        snowflake.ID      `json:"id" gorm:"primaryKey"`
	Name      string            `json:"name" gorm:"type:text;not null"`
	Email     string            `json:"email" gorm:"type:text;not null"`
	Country   string            `json:"country" gorm:"type:text"`
	TaxID     string            `json:"tax_id" gorm:"type:text"`
	Consignee string            `json:"consignee" gorm:"type:text"`
	Address   string            `json:"address" gorm:"type:text"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
