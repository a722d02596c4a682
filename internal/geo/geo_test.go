// internal/geo/geo_test.go
//
// Unit-tests for country resolution.  The MaxMind path needs a real .mmdb
// fixture, so tests cover the deterministic pieces: the code → name table
// and the nil-safe degradation.

package geo

import "testing"

func TestNameForCode(t *testing.T) {
	cases := map[string]string{
		"US": "United States",
		"FR": "France",
		"MA": "Morocco",
		"GB": "United Kingdom",
	}
	for code, want := range cases {
		if got := NameForCode(code); got != want {
			t.Errorf("NameForCode(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestNameForCode_UnknownSentinel(t *testing.T) {
	for _, code := range []string{"", "XX", "ZZ", "us"} { // table is upper-case only
		if got := NameForCode(code); got != Unknown {
			t.Errorf("NameForCode(%q) = %q, want %q", code, got, Unknown)
		}
	}
}

func TestCountryName_NilResolver(t *testing.T) {
	var g *Resolver
	if got := g.CountryName("8.8.8.8"); got != Unknown {
		t.Fatalf("nil resolver CountryName = %q, want %q", got, Unknown)
	}
	if err := g.Close(); err != nil {
		t.Fatalf("nil resolver Close: %v", err)
	}
}

func TestCountryName_UnparsableAddress(t *testing.T) {
	g := &Resolver{} // open handle absent; must degrade, not panic
	if got := g.CountryName("not-an-ip"); got != Unknown {
		t.Fatalf("CountryName = %q, want %q", got, Unknown)
	}
}
