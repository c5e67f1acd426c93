package main

import (
	"context"
	"fmt"
	"log"

	"github.com/chazu/camber/pkg/cam"
	"github.com/chazu/camber/pkg/element"
	"github.com/chazu/camber/pkg/engine"
	"github.com/chazu/camber/pkg/kernel"
	"github.com/chazu/camber/pkg/kernel/sdfx"
	"github.com/chazu/camber/pkg/tessellate"
	"github.com/chazu/camber/pkg/unify"
)

// colorPalette is a default palette used to assign distinct colors to parts.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend editor: the
// generated G-code, preview meshes, and diagnostics.
type EvalResult struct {
	Gcode     string          `json:"gcode"`
	Meshes    []MeshData      `json:"meshes"`
	Errors    []EvalErrorData `json:"errors"`
	Warnings  []string        `json:"warnings"`
	Levels    int             `json:"levels"`
	Skipped   int             `json:"skipped"`
	CycleTime float64         `json:"cycleTime"` // seconds
}

// NewApp creates a new App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Evaluate takes Lisp source and returns G-code, preview meshes, and
// diagnostics. This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []string{},
	}

	// Step 1: evaluate the Lisp source into a project.
	project, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	if len(project.Elements) == 0 {
		return result
	}

	// Step 2: validate the element tree against the settings.
	validation := element.ValidateAll(project.Elements,
		project.Settings.ToolDiameter, project.Settings.Depth)
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Path+": "+w.Message)
	}
	if len(validation.Errors) > 0 {
		for _, e := range validation.Errors {
			result.Errors = append(result.Errors, EvalErrorData{Message: e.Error()})
		}
		return result
	}

	// Step 3: generate the toolpath, attempting a boolean union first.
	gen, err := cam.GenerateComponent(project.Elements, project.Settings,
		cam.ComponentOptions{Unifier: unify.New(a.kernel)})
	if err != nil {
		log.Printf("Generate error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "toolpath generation failed: " + err.Error(),
		})
		return result
	}
	result.Gcode = gen.Gcode
	result.Levels = gen.Levels
	result.Skipped = gen.Skipped
	result.CycleTime = gen.Path.CycleTime()

	// Step 4: tessellate preview meshes. Preview failures are advisory.
	tess, err := tessellate.Tessellate(project.Elements, a.kernel)
	if err != nil {
		log.Printf("Tessellate error: %v", err)
		result.Warnings = append(result.Warnings, "preview failed: "+err.Error())
		return result
	}
	for _, sk := range tess.Skipped {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no preview for %s", sk.Kind))
	}
	for i, m := range tess.Meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}

// DefaultSettings returns the default machining settings, so the
// frontend can populate the settings panel.
func (a *App) DefaultSettings() cam.Settings {
	return cam.DefaultSettings()
}

// GenerateResult is the binding result for direct element generation.
type GenerateResult struct {
	Gcode     string   `json:"gcode"`
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	Levels    int      `json:"levels"`
	Skipped   int      `json:"skipped"`
	CycleTime float64  `json:"cycleTime"`
}

// Generate produces G-code from structured element specs, bypassing the
// Lisp layer. Used by the frontend's form-based editor.
func (a *App) Generate(specs []ElementSpec, settings cam.Settings) GenerateResult {
	result := GenerateResult{Errors: []string{}, Warnings: []string{}}

	els := make([]*element.Element, 0, len(specs))
	for i, spec := range specs {
		el, err := spec.toElement()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("element %d: %v", i, err))
			return result
		}
		els = append(els, el)
	}

	validation := element.ValidateAll(els, settings.ToolDiameter, settings.Depth)
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Path+": "+w.Message)
	}
	if len(validation.Errors) > 0 {
		for _, e := range validation.Errors {
			result.Errors = append(result.Errors, e.Error())
		}
		return result
	}

	gen, err := cam.GenerateComponent(els, settings,
		cam.ComponentOptions{Unifier: unify.New(a.kernel)})
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	result.Gcode = gen.Gcode
	result.Levels = gen.Levels
	result.Skipped = gen.Skipped
	result.CycleTime = gen.Path.CycleTime()
	return result
}
