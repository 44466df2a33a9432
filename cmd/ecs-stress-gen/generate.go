package main

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"golang.org/x/tools/imports"
)

// Config sizes the generated set.
type Config struct {
	Package    string
	Components int
	Systems    int
}

type componentData struct {
	Index   int
	Payload int
}

type systemData struct {
	Index  int
	Target int
	Source int
}

type templateData struct {
	Package    string
	Components []componentData
	Systems    []systemData
}

// Generate renders the component and system set for cfg and formats it as
// the file filename. Every system reads one component and writes another, so
// at least two components are needed.
func Generate(cfg Config, filename string) ([]byte, error) {
	if cfg.Components < 2 {
		return nil, errors.New("need at least 2 components")
	}
	if cfg.Systems < 0 {
		return nil, errors.New("system count must not be negative")
	}
	if cfg.Package == "" {
		cfg.Package = "main"
	}

	data := templateData{Package: cfg.Package}
	for i := range cfg.Components {
		data.Components = append(data.Components, componentData{Index: i, Payload: i % 4 * 4})
	}
	for i := range cfg.Systems {
		target, source := systemPair(i, cfg.Components)
		data.Systems = append(data.Systems, systemData{Index: i, Target: target, Source: source})
	}

	var buf bytes.Buffer
	if err := generatedTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	src, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

// systemPair spreads systems over the components: system i writes component
// i mod n and reads a different component picked by a fixed stride.
func systemPair(i, n int) (target, source int) {
	target = i % n
	source = (i*7 + 3) % n
	if source == target {
		source = (target + 1) % n
	}
	return target, source
}

var generatedTemplate = template.Must(template.New("generated").Parse(`// Code generated by ecs-stress-gen. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"
	"math/rand/v2"
	"reflect"

	"github.com/plus3/turfwars/ecs"
)

const (
	componentCount = {{len .Components}}
	systemCount    = {{len .Systems}}
)
{{range .Components}}
type Component{{.Index}} struct {
	Value   float64
	Counter int64
	Payload [{{.Payload}}]byte
}
{{end}}
var componentTypes = []reflect.Type{
{{- range .Components}}
	reflect.TypeFor[Component{{.Index}}](),
{{- end}}
}
{{range .Systems}}
type System{{.Index}} struct {
	Query ecs.Query[struct {
		*Component{{.Target}}
		Source *Component{{.Source}}
	}]
}

func (s *System{{.Index}}) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Query.Values() {
		item.Component{{.Target}}.Value += item.Source.Value*frame.DeltaTime + 1
		item.Component{{.Target}}.Counter++
	}
}
{{end}}
// RegisterAllGeneratedComponents registers every generated component type.
func RegisterAllGeneratedComponents(registry *ecs.ComponentRegistry) {
{{- range .Components}}
	ecs.RegisterComponent[Component{{.Index}}](registry)
{{- end}}
}

// RegisterAllGeneratedSystems registers every generated system.
func RegisterAllGeneratedSystems(scheduler *ecs.Scheduler) {
{{- range .Systems}}
	scheduler.Register(&System{{.Index}}{})
{{- end}}
}

// SpawnRandomEntity creates an entity holding up to n randomly chosen
// generated components.
func SpawnRandomEntity(scene *ecs.Scene, rng *rand.Rand, n int) (ecs.Entity, error) {
	e, err := scene.CreateEntity()
	if err != nil {
		return e, err
	}
	for range n {
		if err := AddRandomComponent(scene, rng, e); err != nil {
			return e, err
		}
	}
	return e, nil
}

// AddRandomComponent adds one randomly chosen generated component to e.
func AddRandomComponent(scene *ecs.Scene, rng *rand.Rand, e ecs.Entity) error {
	t := componentTypes[rng.IntN(len(componentTypes))]
	if err := scene.AddComponentValue(e, reflect.New(t).Interface()); err != nil {
		return fmt.Errorf("adding %s: %w", t.Name(), err)
	}
	return nil
}
`))
