// Package render provides a global registry for renderer backends.
// Backends register themselves in init() functions, allowing the engine
// to discover and instantiate them without hardcoded dependencies.
package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/animalstyletaco/Sly2Decomp/internal/config"
	"github.com/animalstyletaco/Sly2Decomp/internal/display"
	"github.com/animalstyletaco/Sly2Decomp/internal/graphics"
)

// Pipeline identifies the native API a backend presents through.
type Pipeline int

const (
	PipelineInvalid Pipeline = iota
	PipelineX11
	PipelineHeadless
)

func (p Pipeline) String() string {
	switch p {
	case PipelineX11:
		return "x11"
	case PipelineHeadless:
		return "headless"
	default:
		return "invalid"
	}
}

// Module is the full renderer backend interface: chain rendering plus the
// platform surface it draws into. A module owns the native connection and
// every window created through it.
type Module interface {
	graphics.Renderer

	// Name returns the unique backend identifier (e.g. "x11").
	Name() string

	// Pipeline returns the native API this backend uses.
	Pipeline() Pipeline

	// Init connects to the native platform. Called once, before any
	// window is created.
	Init(cfg *config.Config) error

	// MakeDisplay creates a native window. Satisfies display.WindowMaker.
	MakeDisplay(width, height int, title string, isMain bool) (display.Window, error)

	// Screens enumerates the attached monitors.
	Screens() ([]display.Screen, error)

	// Exit tears the native connection down. Called after every window is
	// destroyed.
	Exit()
}

// Info contains metadata about a registered backend.
type Info struct {
	Name     string
	Pipeline Pipeline
}

// Factory is a function that creates a new instance of a backend.
type Factory func() Module

var (
	factories = make(map[string]Factory)
	pipelines = make(map[string]Pipeline)
	mu        sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("render: backend %q already registered", name))
	}

	factories[name] = f

	// Get the pipeline by creating a temporary instance
	m := f()
	pipelines[name] = m.Pipeline()
}

// List returns information about all registered backends, sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for name := range factories {
		result = append(result, Info{
			Name:     name,
			Pipeline: pipelines[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a new backend by its name.
// Returns an error if the name is not registered.
func Create(name string) (Module, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("render: unknown backend %q", name)
	}

	return f(), nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
