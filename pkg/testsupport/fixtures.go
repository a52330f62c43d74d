package testsupport

import (
	"embed"
	"encoding/json"
	"path"
	"testing"
)

//go:embed testdata
var fixtures embed.FS

// LoadFixture loads test data from a fixture file shipped in this package's
// testdata directory, so callers in any package can use it.
func LoadFixture(t testing.TB, name string) []byte {
	t.Helper()

	data, err := fixtures.ReadFile(FixturePath(name))
	if err != nil {
		t.Fatalf("failed to load fixture %s: %v", name, err)
	}

	return data
}

// LoadFixtureJSON loads a JSON fixture and unmarshals it into dest.
func LoadFixtureJSON(t testing.TB, name string, dest any) {
	t.Helper()

	data := LoadFixture(t, name)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture %s: %v", name, err)
	}
}

// FixturePath constructs the path of a fixture inside the testdata directory.
func FixturePath(name string) string {
	return path.Join("testdata", name)
}

// LoadCatalog decodes the shared catalog fixture. Every call returns a fresh
// copy so tests may mutate it.
func LoadCatalog(t testing.TB) Catalog {
	t.Helper()

	var c Catalog
	LoadFixtureJSON(t, "catalog.json", &c)
	return c
}
