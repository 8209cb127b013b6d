package entity

import "time"

// TransferRecord documents one committed transfer between labs. Records are
// immutable and append-only: exactly one per successful transfer, written in
// the same transaction as the quantity changes it documents.
type TransferRecord struct {
	ID               string
	ProductID        string
	SourceLabID      string
	DestinationLabID string
	Quantity         int64 // always > 0
	Notes            string
	ActorID          string
	Timestamp        time.Time
}
