package geo

import (
	"os"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// referenceFile is the YAML schema for reference set files. A file may
// carry any combination of the three sections.
type referenceFile struct {
	Airports []Point `yaml:"airports"`
	Beaches  []Point `yaml:"beaches"`
	Cities   []Point `yaml:"cities"`
}

// LoadYAML reads reference sets from a YAML file. Missing sections fall
// back to the built-in defaults so a partial override file stays usable.
func LoadYAML(path string) (airports, beaches, cities *ReferenceSet, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, eris.Wrapf(err, "geo: read reference file %s", path)
	}

	var rf referenceFile
	if err := yaml.Unmarshal(raw, &rf); err != nil {
		return nil, nil, nil, eris.Wrapf(err, "geo: parse reference file %s", path)
	}

	airports = DefaultAirports()
	beaches = DefaultBeaches()
	cities = DefaultCities()
	if len(rf.Airports) > 0 {
		airports = NewReferenceSet(KindAirport, rf.Airports)
	}
	if len(rf.Beaches) > 0 {
		beaches = NewReferenceSet(KindBeach, rf.Beaches)
	}
	if len(rf.Cities) > 0 {
		cities = NewReferenceSet(KindCity, rf.Cities)
	}

	zap.L().Info("geo: reference sets loaded",
		zap.String("path", path),
		zap.Int("airports", airports.Len()),
		zap.Int("beaches", beaches.Len()),
		zap.Int("cities", cities.Len()),
	)
	return airports, beaches, cities, nil
}

// LoadShapefile reads a point shapefile into a reference set. Attribute
// columns are matched case-insensitively: NAME is required; CODE, POP and
// YEARROUND are used when present.
func LoadShapefile(path string, kind PointKind) (*ReferenceSet, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, "NAME")
	if nameIdx < 0 {
		return nil, eris.Errorf("geo: shapefile %s has no NAME field", path)
	}
	codeIdx := fieldIndex(reader, "CODE")
	popIdx := fieldIndex(reader, "POP")
	yearIdx := fieldIndex(reader, "YEARROUND")

	var points []Point
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()
		pt, ok := shape.(*shp.Point)
		if !ok {
			skipped++
			continue
		}

		p := Point{
			Kind: kind,
			Name: strings.TrimSpace(reader.Attribute(nameIdx)),
			Lat:  pt.Y,
			Lng:  pt.X,
		}
		if p.Name == "" {
			skipped++
			continue
		}
		if codeIdx >= 0 {
			p.Code = strings.TrimSpace(reader.Attribute(codeIdx))
		}
		if popIdx >= 0 {
			if pop, err := strconv.Atoi(strings.TrimSpace(reader.Attribute(popIdx))); err == nil {
				p.Population = pop
			}
		}
		if yearIdx >= 0 {
			v := strings.ToLower(strings.TrimSpace(reader.Attribute(yearIdx)))
			p.YearRound = v == "1" || v == "true" || v == "y"
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, eris.Errorf("geo: shapefile %s contained no usable points", path)
	}

	zap.L().Info("geo: shapefile loaded",
		zap.String("path", path),
		zap.String("kind", string(kind)),
		zap.Int("points", len(points)),
		zap.Int("skipped", skipped),
	)
	return NewReferenceSet(kind, points), nil
}

// fieldIndex returns the index of a named field in the shapefile, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
