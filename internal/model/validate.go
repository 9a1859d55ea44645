package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// DecodeCatalog parses a catalog document. Structural problems (not an
// object, missing the properties array) fail immediately; the engine never
// guesses missing structure.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var probe struct {
		Properties *json.RawMessage `json:"properties"`
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, eris.Wrap(err, "model: read catalog")
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, eris.Wrap(err, "model: catalog is not a JSON object")
	}
	if probe.Properties == nil {
		return nil, eris.New("model: catalog missing required properties array")
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, eris.Wrap(err, "model: decode catalog")
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// normalize rewrites wire sentinels into their in-memory form. The feed
// encodes unknown bedrooms as -1; internally unknown is nil.
func (c *Catalog) normalize() {
	for i := range c.Listings {
		if b := c.Listings[i].Bedrooms; b != nil && *b == -1 {
			c.Listings[i].Bedrooms = nil
		}
	}
}

// Validate checks per-listing invariants. Absent values are legal; present
// values must be sane.
func (c *Catalog) Validate() error {
	var errs []string
	for i := range c.Listings {
		l := &c.Listings[i]
		if l.Title == "" && l.URL == "" {
			errs = append(errs, fmt.Sprintf("listing %d: no title or url", i))
		}
		if l.Price != nil && *l.Price < 0 {
			errs = append(errs, fmt.Sprintf("listing %d: negative price", i))
		}
		if l.AreaSqm != nil && *l.AreaSqm < 0 {
			errs = append(errs, fmt.Sprintf("listing %d: negative area", i))
		}
		// -1 is the feed's unknown sentinel, tolerated here for callers
		// that skip DecodeCatalog's normalization.
		if l.Bedrooms != nil && *l.Bedrooms < -1 {
			errs = append(errs, fmt.Sprintf("listing %d: invalid bedrooms", i))
		}
		if l.Coordinates != nil {
			if l.Coordinates.Lat < -90 || l.Coordinates.Lat > 90 ||
				l.Coordinates.Lng < -180 || l.Coordinates.Lng > 180 {
				errs = append(errs, fmt.Sprintf("listing %d: coordinates out of range", i))
			}
		}
	}
	if len(errs) > 0 {
		return eris.Errorf("model: catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
