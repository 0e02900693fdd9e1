package model

import (
	"time"

	"gorm.io/datatypes"
)

// CurveParams is the single configuration row of the bonding curve.
// Only ReserveRatioPPM is owner-adjustable after initialization.
type CurveParams struct {
	ID              uint
	Exponent        float64
	MaxSupply       float64
	MaxPrice        float64
	ReserveRatioPPM uint32 `gorm:"column:reserve_ratio_ppm"`
}

// CurveState is the single mutable row the trade engine writes.
type CurveState struct {
	ID        uint
	Supply    float64
	Reserve   float64
	Paused    bool `gorm:"default:false"`
	UpdatedAt time.Time
}

type Wallet struct {
	ID           uint
	Address      string `gorm:"uniqueIndex"`
	EthBalance   float64
	TokenBalance float64
	CreatedAt    time.Time
}

// Trade rows are append-only; they are never updated or deleted.
type Trade struct {
	ID          uint
	Address     string `gorm:"index"`
	Side        Side
	EthAmount   float64
	TokenAmount float64
	// Price is the spot price after the trade's own effect on supply.
	Price     float64
	CreatedAt time.Time
}

type PriceTick struct {
	ID        uint
	Supply    float64
	Price     float64
	Reserve   float64
	CreatedAt time.Time
}

type DailySnapshot struct {
	Date      datatypes.Date `gorm:"primaryKey"`
	Supply    float64
	Reserve   float64
	MarketCap float64
	Fdv       float64
}

type User struct {
	ID       int
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

type Event struct {
	ID       uint
	IsActive bool
}
