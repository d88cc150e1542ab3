// Package domain contains persistence models for the product catalog:
// fabrics and furniture modules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Fabric is a supplier's fabric with its BRL list value per covered module.
type Fabric struct {
	ID         snowflake.ID `json:"id" gorm:"primaryKey"`
	SupplierID snowflake.ID `json:"supplier_id" gorm:"not null;index"`
	Name       string       `json:"name" gorm:"type:text;not null"`
	Code       string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	// BaseValue is the source-currency (BRL) fabric cost fed to the engine.
	BaseValue float64   `json:"base_value" gorm:"not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Fabric) TableName() string { return "fabrics" }

// FurnitureModule is a catalog module with its shipping dimensions.
type FurnitureModule struct {
	ID     snowflake.ID `json:"id" gorm:"primaryKey"`
	Name   string       `json:"name" gorm:"type:text;not null"`
	Code   string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	WidthM float64      `json:"width_m" gorm:"not null"`
	DepthM float64      `json:"depth_m" gorm:"not null"`
	// HeightM completes the packed dimensions in meters.
	HeightM   float64   `json:"height_m" gorm:"not null"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (FurnitureModule) TableName() string { return "furniture_modules" }

// UnitVolume is the packed volume in m3 used as the freight weight basis.
func (m FurnitureModule) UnitVolume() float64 {
	return m.WidthM * m.DepthM * m.HeightM
}
