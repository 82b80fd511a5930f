package identity

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestPersonID_Deterministic tests that the same logical person always
// yields the same identifier
func TestPersonID_Deterministic(t *testing.T) {
	key := PersonKey{FullName: "Jane Smith", DateOfBirth: "1975-03", Nationality: "British"}
	if PersonID(key) != PersonID(key) {
		t.Error("Same key must produce the same ID")
	}
}

// TestPersonID_NormalizesCosmeticVariation tests case and whitespace folding
func TestPersonID_NormalizesCosmeticVariation(t *testing.T) {
	a := PersonID(PersonKey{FullName: "JANE   SMITH", DateOfBirth: "1975-03", Nationality: "BRITISH"})
	b := PersonID(PersonKey{FullName: "jane smith", DateOfBirth: "1975-03", Nationality: "british"})
	if a != b {
		t.Errorf("Cosmetic variants should collide: %s != %s", a, b)
	}
}

// TestPersonID_FieldBoundaries tests that field content cannot shift across
// field boundaries
func TestPersonID_FieldBoundaries(t *testing.T) {
	a := PersonID(PersonKey{FullName: "jane", DateOfBirth: "smith 1975-03"})
	b := PersonID(PersonKey{FullName: "jane smith", DateOfBirth: "1975-03"})
	if a == b {
		t.Error("Distinct field splits must not collide")
	}
}

// TestPersonID_EmptyInput tests that degenerate input still yields a valid ID
func TestPersonID_EmptyInput(t *testing.T) {
	id := PersonID(PersonKey{})
	if !strings.HasPrefix(id, "P_") || len(id) != 2+32 {
		t.Errorf("Expected well-formed ID for empty key, got %q", id)
	}
}

// TestAddressID_Deterministic tests address identity stability
func TestAddressID_Deterministic(t *testing.T) {
	a := AddressID("29 Harley Street,  LONDON, W1G 9QR")
	b := AddressID("29 harley street, london, w1g 9qr")
	if a != b {
		t.Errorf("Normalized addresses should match: %s != %s", a, b)
	}
	if !strings.HasPrefix(a, "A_") {
		t.Errorf("Expected A_ prefix, got %q", a)
	}
}

// TestPersonID_NoCollisions generates 10,000 distinct synthetic identities
// and verifies zero collisions
func TestPersonID_NoCollisions(t *testing.T) {
	seen := make(map[string]PersonKey, 10000)
	for i := 0; i < 100; i++ {
		for j := 0; j < 100; j++ {
			key := PersonKey{
				FullName:    fmt.Sprintf("person %d %d", i, j),
				DateOfBirth: fmt.Sprintf("19%02d-%02d", i%100, 1+j%12),
				Nationality: fmt.Sprintf("country-%d", j),
			}
			id := PersonID(key)
			if prev, dup := seen[id]; dup {
				t.Fatalf("Collision between %+v and %+v on %s", prev, key, id)
			}
			seen[id] = key
		}
	}
	if len(seen) != 10000 {
		t.Errorf("Expected 10000 unique IDs, got %d", len(seen))
	}
}

// TestIdentityProperties verifies resolver invariants over arbitrary input
func TestIdentityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("ID is independent of surrounding whitespace", prop.ForAll(
		func(name, dob string) bool {
			a := PersonID(PersonKey{FullName: name, DateOfBirth: dob})
			b := PersonID(PersonKey{FullName: "  " + name + "  ", DateOfBirth: dob})
			return a == b
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("ID length is fixed", prop.ForAll(
		func(raw string) bool {
			return len(AddressID(raw)) == 2+32
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
