package entity

import "time"

// Location types for a stock item inside its lab.
const (
	LocationTypeWorkspace = "workspace"
	LocationTypeCabinet   = "cabinet"
)

// Cabinet positions.
const (
	CabinetPositionUpper = "upper"
	CabinetPositionLower = "lower"
)

// StockItem is a tracked quantity of a named item at one lab.
// (RegistryNumber, LabID) is unique; Quantity never goes below zero.
// Version is the optimistic-concurrency token: it increments by exactly one on
// every committed mutation, and every mutation is conditional on the version
// the writer last read.
type StockItem struct {
	ID               string
	Name             string
	RegistryNumber   string
	Quantity         int64
	Unit             string
	MinimumQuantity  int64
	LocationType     string // workspace | cabinet
	LocationNumber   int    // cabinet only, 1..lab.MaxCabinets
	LocationPosition string // cabinet only, upper | lower
	Notes            string
	LabID            string
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
