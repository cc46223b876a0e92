package database

import (
	"strings"
	"testing"
)

func TestEmbeddedCitiesDecode(t *testing.T) {
	cities, err := LoadCities()
	if err != nil {
		t.Fatalf("load cities: %v", err)
	}
	if len(cities) == 0 {
		t.Fatalf("no cities decoded")
	}
	seen := map[string]bool{}
	for _, c := range cities {
		if c.Key == "" || c.Name == "" {
			t.Fatalf("incomplete city %+v", c)
		}
		if seen[c.Key] {
			t.Fatalf("duplicate key %q", c.Key)
		}
		seen[c.Key] = true
	}
	if !seen["jakarta"] {
		t.Fatalf("expected jakarta in seed list")
	}
}

func TestStageAndShipmentTablesReferenceParents(t *testing.T) {
	want := map[string][]string{
		"wet_leaves": {"REFERENCES users(UserID)"},
		"dry_leaves": {"REFERENCES users(UserID)", "REFERENCES wet_leaves(WetLeavesID)"},
		"flour":      {"REFERENCES users(UserID)", "REFERENCES dry_leaves(DryLeavesID)"},
		"shipments":  {"REFERENCES couriers(CourierID)", "REFERENCES users(UserID)"},
	}
	created := map[string]int{}
	for i, ddl := range tables {
		for name := range want {
			if strings.HasPrefix(ddl, "CREATE TABLE IF NOT EXISTS "+name+" (") {
				created[name] = i
			}
		}
	}
	for name, refs := range want {
		i, ok := created[name]
		if !ok {
			t.Fatalf("no DDL for %s", name)
		}
		for _, ref := range refs {
			if !strings.Contains(tables[i], ref) {
				t.Fatalf("%s lacks %s", name, ref)
			}
		}
	}
}
