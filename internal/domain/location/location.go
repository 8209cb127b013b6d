// Package location encodes and decodes item storage locations.
//
// A location is either the literal "workspace" or a composite
// "cabinet-<number>-<position>" where number is 1..maxCabinets and position is
// "upper" or "lower". Parse and String are inverses on every valid value;
// malformed input is rejected before anything touches the store.
package location

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/labstock-api/internal/domain"
	"github.com/jhoicas/labstock-api/internal/domain/entity"
)

// Workspace is the encoded form of a workspace location.
const Workspace = "workspace"

const cabinetPrefix = "cabinet"

// Location is the decoded form. Number and Position are meaningful only when
// Type is cabinet.
type Location struct {
	Type     string
	Number   int
	Position string
}

// Parse decodes raw against a lab's cabinet bound. Errors wrap
// domain.ErrInvalidInput.
func Parse(raw string, maxCabinets int) (Location, error) {
	if raw == Workspace {
		return Location{Type: entity.LocationTypeWorkspace}, nil
	}
	parts := strings.Split(raw, "-")
	if len(parts) != 3 || parts[0] != cabinetPrefix {
		return Location{}, fmt.Errorf("%w: location %q", domain.ErrInvalidInput, raw)
	}
	num, err := strconv.Atoi(parts[1])
	if err != nil || num < 1 {
		return Location{}, fmt.Errorf("%w: cabinet number %q", domain.ErrInvalidInput, parts[1])
	}
	if maxCabinets > 0 && num > maxCabinets {
		return Location{}, fmt.Errorf("%w: cabinet %d exceeds lab maximum %d", domain.ErrInvalidInput, num, maxCabinets)
	}
	if parts[2] != entity.CabinetPositionUpper && parts[2] != entity.CabinetPositionLower {
		return Location{}, fmt.Errorf("%w: cabinet position %q", domain.ErrInvalidInput, parts[2])
	}
	return Location{Type: entity.LocationTypeCabinet, Number: num, Position: parts[2]}, nil
}

// String encodes the location back to its wire form.
func (l Location) String() string {
	if l.Type == entity.LocationTypeWorkspace {
		return Workspace
	}
	return fmt.Sprintf("%s-%d-%s", cabinetPrefix, l.Number, l.Position)
}

// Of extracts the location of an existing item.
func Of(item *entity.StockItem) Location {
	return Location{
		Type:     item.LocationType,
		Number:   item.LocationNumber,
		Position: item.LocationPosition,
	}
}

// Apply writes the location onto an item, clearing cabinet fields for
// workspace items so the invariant "number/position present iff cabinet"
// holds at the entity level.
func (l Location) Apply(item *entity.StockItem) {
	item.LocationType = l.Type
	if l.Type == entity.LocationTypeWorkspace {
		item.LocationNumber = 0
		item.LocationPosition = ""
		return
	}
	item.LocationNumber = l.Number
	item.LocationPosition = l.Position
}
