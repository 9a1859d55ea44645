package scorer

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/aegean-group/property-cli/internal/model"
)

// Component names, used as keys in ScoredListing.Components and as flag
// names on the CLI.
const (
	ComponentPrice      = "price"
	ComponentAirport    = "airport"
	ComponentBeach      = "beach"
	ComponentSize       = "size"
	ComponentYield      = "yield"
	ComponentRenovation = "renovation"
)

// ComponentNames lists the components in display order.
var ComponentNames = []string{
	ComponentPrice, ComponentAirport, ComponentBeach,
	ComponentSize, ComponentYield, ComponentRenovation,
}

// DefaultWeights returns the stock weight vector. Price dominates, the
// two proximity axes come next, yield and size follow, and renovation is
// a small penalty knob.
func DefaultWeights() model.WeightVector {
	return model.WeightVector{
		Price:      25,
		Airport:    20,
		Beach:      20,
		Size:       15,
		Yield:      15,
		Renovation: 5,
	}
}

// ValidateWeights rejects negative weights. An all-zero vector is legal;
// it produces a uniform score of 0.
func ValidateWeights(w model.WeightVector) error {
	var errs []string
	check := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, name+" weight must be non-negative")
		}
	}
	check(ComponentPrice, w.Price)
	check(ComponentAirport, w.Airport)
	check(ComponentBeach, w.Beach)
	check(ComponentSize, w.Size)
	check(ComponentYield, w.Yield)
	check(ComponentRenovation, w.Renovation)
	if len(errs) > 0 {
		return eris.New("scorer: invalid weights: " + strings.Join(errs, "; "))
	}
	return nil
}
