package main

import (
	"os"
	"strings"
	"testing"
)

// TestE2EBracketExample exercises the full pipeline: Lisp source ->
// engine -> elements -> toolpath + preview meshes. This is the same
// path the Wails Evaluate binding takes, but without the Wails runtime.
func TestE2EBracketExample(t *testing.T) {
	source, err := os.ReadFile("examples/bracket.camber")
	if err != nil {
		t.Fatalf("failed to read example: %v", err)
	}

	app := NewApp()
	result := app.Evaluate(string(source))

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error at line %d: %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// The program must carry the standard header and footer.
	if !strings.Contains(result.Gcode, "G21") {
		t.Error("G-code should select metric units (G21)")
	}
	if !strings.Contains(result.Gcode, "M2") {
		t.Error("G-code should end the program (M2)")
	}
	if !strings.Contains(result.Gcode, "G1") {
		t.Error("G-code should contain cutting moves (G1)")
	}

	// depth 12 at stepdown 3 -> 4 passes over the merged solid.
	if result.Levels != 4 {
		t.Errorf("expected 4 Z levels, got %d", result.Levels)
	}
	if result.CycleTime <= 0 {
		t.Errorf("expected positive cycle time, got %f", result.CycleTime)
	}

	// Preview: one mesh per leaf element of the bracket group.
	if len(result.Meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(result.Meshes))
	}
	names := make(map[string]bool)
	for _, m := range result.Meshes {
		names[m.Name] = true
		if len(m.Vertices) == 0 {
			t.Errorf("mesh %q should have vertices", m.Name)
		}
		if len(m.Normals) == 0 {
			t.Errorf("mesh %q should have normals", m.Name)
		}
		if len(m.Indices) == 0 {
			t.Errorf("mesh %q should have indices", m.Name)
		}
		if m.Color == "" {
			t.Errorf("mesh %q should have a color", m.Name)
		}
	}
	for _, want := range []string{"plate", "boss-a", "boss-b"} {
		if !names[want] {
			t.Errorf("missing mesh for %q", want)
		}
	}
}

func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected no errors for empty source, got %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected no meshes for empty source, got %d", len(result.Meshes))
	}
	if result.Gcode != "" {
		t.Errorf("expected no G-code for empty source, got %q", result.Gcode)
	}
}

func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(cube :width 10`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for unmatched paren")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected no meshes on syntax error, got %d", len(result.Meshes))
	}
	if result.Gcode != "" {
		t.Errorf("expected no G-code on syntax error, got %q", result.Gcode)
	}
}

func TestE2ESingleCube(t *testing.T) {
	app := NewApp()

	source := `
(settings :depth 10)
(emit (cube :name "slab" :width 60 :depth 40 :height 10))
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}

	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if result.Meshes[0].Name != "slab" {
		t.Errorf("expected mesh name 'slab', got %q", result.Meshes[0].Name)
	}

	// depth 10 at the default stepdown of 2 -> 5 passes.
	if result.Levels != 5 {
		t.Errorf("expected 5 Z levels, got %d", result.Levels)
	}
	if !strings.Contains(result.Gcode, "G1") {
		t.Error("G-code should contain cutting moves")
	}
}
