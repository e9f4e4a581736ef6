package util

import "testing"

func TestHashJSONStable(t *testing.T) {
	type params struct {
		ID   string
		Tags []string
	}
	a := HashJSON(params{ID: "001A1", Tags: []string{"x", "y"}})
	b := HashJSON(params{ID: "001A1", Tags: []string{"x", "y"}})
	if a != b {
		t.Fatalf("same content should hash the same: %s vs %s", a, b)
	}
}

func TestHashJSONDetectsChange(t *testing.T) {
	a := HashJSON(map[string]int{"n": 1})
	b := HashJSON(map[string]int{"n": 2})
	if a == b {
		t.Fatalf("different content should hash differently")
	}
}

func TestHashJSONMapOrderIndependent(t *testing.T) {
	a := HashJSON(map[string]string{"x": "1", "y": "2", "z": "3"})
	b := HashJSON(map[string]string{"z": "3", "y": "2", "x": "1"})
	if a != b {
		t.Fatalf("map key order should not affect the hash")
	}
}
