// internal/geo/geo.go
//
// Country resolution for captured addresses (MaxMind lookup).
//
// Context
// -------
// The capture record stores a display-oriented country name, not an ISO
// code.  Resolution is two steps: the MaxMind Country database maps the
// address to an ISO 3166-1 alpha-2 code, and a static table maps the code
// to its English short name.  A miss at either step yields the "Unknown"
// sentinel; the record is still written.
//
// The Resolver handle is opened once at boot and shared.  All methods are
// nil-receiver safe so a missing .mmdb file degrades to "Unknown" instead
// of taking the service down.
//
// Notes
// -----
// • MaxMind reads are concurrency-safe; no locking here.
// • Oxford commas, two spaces after periods.
package geo

import (
	"net"

	"github.com/oschwald/geoip2-golang"
)

// Unknown is returned whenever a country cannot be determined.
const Unknown = "Unknown"

// Resolver wraps a MaxMind Country database handle.
type Resolver struct {
	reader *geoip2.Reader
}

// Open loads the .mmdb file at path.  Callers should Close the Resolver
// when done.
func Open(path string) (*Resolver, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &Resolver{reader: r}, nil
}

// Close releases the database handle.  Safe on a nil Resolver.
func (g *Resolver) Close() error {
	if g == nil || g.reader == nil {
		return nil
	}
	return g.reader.Close()
}

// CountryName maps a dotted-quad address to its country display name, or
// Unknown when the address does not parse, the database has no match, or
// the ISO code is not in the name table.
func (g *Resolver) CountryName(ipStr string) string {
	if g == nil || g.reader == nil {
		return Unknown
	}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return Unknown
	}
	rec, err := g.reader.Country(ip)
	if err != nil {
		return Unknown
	}
	return NameForCode(rec.Country.IsoCode)
}

// NameForCode translates an ISO 3166-1 alpha-2 code to its English short
// name, or Unknown when the code is absent from the table.
func NameForCode(iso string) string {
	if name, ok := countryNames[iso]; ok {
		return name
	}
	return Unknown
}
