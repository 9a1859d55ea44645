package geo

import (
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/aegean-group/property-cli/internal/model"
)

// Region identifiers. Classification is a closed enumeration plus
// model.OtherRegion as the catch-all.
const (
	RegionIonianIslands  model.Region = "ionian_islands"
	RegionNorthernGreece model.Region = "northern_greece"
	RegionHalkidiki      model.Region = "halkidiki"
	RegionThessaloniki   model.Region = "thessaloniki"
	RegionCrete          model.Region = "crete"
	RegionPelionSporades model.Region = "pelion_sporades"
	RegionAttica         model.Region = "attica"
	RegionPeloponnese    model.Region = "peloponnese"
)

// Regions lists the closed enumeration in display order.
var Regions = []model.Region{
	RegionIonianIslands,
	RegionNorthernGreece,
	RegionHalkidiki,
	RegionThessaloniki,
	RegionCrete,
	RegionPelionSporades,
	RegionAttica,
	RegionPeloponnese,
	model.OtherRegion,
}

type textRule struct {
	needle string
	region model.Region
}

// textRules are tested in order against the lowercased address; first match
// wins. Text evidence outranks the coordinate boxes below, which are coarse
// rectangles that can cross administrative boundaries. Keep more specific
// place names ahead of broader ones.
var textRules = []textRule{
	{"corfu", RegionIonianIslands},
	{"kerkyra", RegionIonianIslands},
	{"cephalonia", RegionIonianIslands},
	{"kefalonia", RegionIonianIslands},
	{"lefkada", RegionIonianIslands},
	{"zakynthos", RegionIonianIslands},
	{"ithaca", RegionIonianIslands},
	{"paleokastritsa", RegionIonianIslands},
	{"argostoli", RegionIonianIslands},
	{"halkidiki", RegionHalkidiki},
	{"chalkidiki", RegionHalkidiki},
	{"kassandra", RegionHalkidiki},
	{"sithonia", RegionHalkidiki},
	{"thessaloniki", RegionThessaloniki},
	{"drama", RegionNorthernGreece},
	{"serres", RegionNorthernGreece},
	{"kavala", RegionNorthernGreece},
	{"thassos", RegionNorthernGreece},
	{"chania", RegionCrete},
	{"heraklion", RegionCrete},
	{"rethymno", RegionCrete},
	{"crete", RegionCrete},
	{"pelion", RegionPelionSporades},
	{"portaria", RegionPelionSporades},
	{"volos", RegionPelionSporades},
	{"alonnisos", RegionPelionSporades},
	{"skiathos", RegionPelionSporades},
	{"skopelos", RegionPelionSporades},
	{"athens", RegionAttica},
	{"attica", RegionAttica},
	{"piraeus", RegionAttica},
	{"pireas", RegionAttica},
	{"zografos", RegionAttica},
	{"kalamata", RegionPeloponnese},
	{"messinia", RegionPeloponnese},
	{"peloponnese", RegionPeloponnese},
}

type bboxRule struct {
	bounds *geom.Bounds
	region model.Region
}

func bbox(minLng, minLat, maxLng, maxLat float64, region model.Region) bboxRule {
	return bboxRule{
		bounds: geom.NewBounds(geom.XY).Set(minLng, minLat, maxLng, maxLat),
		region: region,
	}
}

// bboxRules are the coordinate fallback, tested in order after every text
// rule misses. Smaller boxes come first so the big mainland rectangles do
// not swallow them.
var bboxRules = []bboxRule{
	bbox(23.20, 39.90, 24.05, 40.50, RegionHalkidiki),
	bbox(22.75, 40.45, 23.20, 40.80, RegionThessaloniki),
	bbox(23.40, 37.70, 24.15, 38.40, RegionAttica),
	bbox(22.80, 39.00, 24.10, 39.65, RegionPelionSporades),
	bbox(19.30, 37.50, 21.10, 39.90, RegionIonianIslands),
	bbox(23.30, 34.70, 26.50, 35.75, RegionCrete),
	bbox(23.00, 40.60, 24.90, 41.80, RegionNorthernGreece),
	bbox(21.10, 36.40, 23.40, 38.30, RegionPeloponnese),
}

// Classify maps an address and/or coordinate to one region identifier.
// Rule order is fixed: lowercased substring rules first, then bounding
// boxes, then the catch-all. Same input, same answer.
func Classify(address string, coord *model.LatLng) model.Region {
	if address != "" {
		lower := strings.ToLower(address)
		for _, r := range textRules {
			if strings.Contains(lower, r.needle) {
				return r.region
			}
		}
	}
	if coord != nil {
		pt := geom.Coord{coord.Lng, coord.Lat}
		for _, r := range bboxRules {
			if r.bounds.OverlapsPoint(geom.XY, pt) {
				return r.region
			}
		}
	}
	return model.OtherRegion
}
