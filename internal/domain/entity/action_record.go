package entity

import "time"

// Action types recorded in the audit trail.
const (
	ActionAdd      = "add"
	ActionEdit     = "edit"
	ActionDelete   = "delete"
	ActionTransfer = "transfer"
)

// ActionRecord is one immutable audit entry for a user action against an item.
// A transfer produces exactly two: a negative delta against the source lab and
// a positive delta against the destination lab, equal in magnitude.
type ActionRecord struct {
	ID            string
	ActorID       string
	ActionType    string // add | edit | delete | transfer
	ProductID     string
	LabID         string
	QuantityDelta int64 // signed
	Notes         string
	Timestamp     time.Time
}
