package entity

import "time"

// Lab is a physical laboratory that owns stock items. Code is unique and
// stable; MaxCabinets bounds valid cabinet numbers for item locations.
// Labs are immutable once created as far as the transfer engine is concerned.
type Lab struct {
	ID          string
	Code        string
	Name        string
	Description string
	Location    string
	MaxCabinets int
	CreatedAt   time.Time
}

// PredefinedLabs are the seven laboratories the system ships with
// (seeded idempotently by cmd/seedlabs).
var PredefinedLabs = []Lab{
	{Code: "1", Name: "Elektrik Makineler", Description: "Elektrik Makineler Laboratuvarı", MaxCabinets: 8},
	{Code: "2", Name: "Güç Elektroniği", Description: "Güç Elektroniği Laboratuvarı", MaxCabinets: 8},
	{Code: "3", Name: "Otomatik Kontrol", Description: "Otomatik Kontrol Laboratuvarı", MaxCabinets: 8},
	{Code: "4", Name: "Yapay Zeka ve İleri Sinyal", Description: "Yapay Zeka ve İleri Sinyal Laboratuvarı", MaxCabinets: 8},
	{Code: "5", Name: "Mikroişlemci", Description: "Mikroişlemci Laboratuvarı", MaxCabinets: 8},
	{Code: "6", Name: "Haberleşme ve Mikrodalga", Description: "Haberleşme ve Mikrodalga Laboratuvarı", MaxCabinets: 8},
	{Code: "7", Name: "Temel Elektrik-Elektronik", Description: "Temel Elektrik-Elektronik Laboratuvarı", MaxCabinets: 8},
}
