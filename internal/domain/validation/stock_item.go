package validation

// StockItemInput carries the user-supplied fields of an add or edit request.
// Location is validated separately by the location package because it needs
// the owning lab's cabinet bound.
type StockItemInput struct {
	Name            string
	RegistryNumber  string
	Quantity        int64
	Unit            string
	MinimumQuantity int64
}

// StockItem validates the scalar fields of an item. Returns nil when valid.
func StockItem(in StockItemInput) Errors {
	var errs Errors
	if in.Name == "" {
		errs = errs.add("name", "required")
	}
	if len(in.Name) > 200 {
		errs = errs.add("name", "must be at most 200 characters")
	}
	if in.RegistryNumber == "" {
		errs = errs.add("registry_number", "required")
	}
	if len(in.RegistryNumber) > 50 {
		errs = errs.add("registry_number", "must be at most 50 characters")
	}
	if in.Quantity < 0 {
		errs = errs.add("quantity", "cannot be negative")
	}
	if in.Unit == "" {
		errs = errs.add("unit", "required")
	}
	if in.MinimumQuantity < 0 {
		errs = errs.add("minimum_quantity", "cannot be negative")
	}
	return errs
}

// LabInput carries the user-supplied fields of a lab creation request.
type LabInput struct {
	Code        string
	Name        string
	MaxCabinets int
}

// Lab validates a lab. Returns nil when valid.
func Lab(in LabInput) Errors {
	var errs Errors
	if in.Code == "" {
		errs = errs.add("code", "required")
	}
	if in.Name == "" {
		errs = errs.add("name", "required")
	}
	if in.MaxCabinets < 0 {
		errs = errs.add("max_cabinets", "cannot be negative")
	}
	return errs
}
