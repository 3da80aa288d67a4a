// Package plugin records the build-time plugins a descriptor asks for. A
// plugin validates its options when it is configured; plugins that produce
// files also implement Emitter.
package plugin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"

	"github.com/microsoft/retina-site/internal/docsite/config"
	"github.com/microsoft/retina-site/internal/docsite/docs"
	"github.com/microsoft/retina-site/internal/docsite/logger"
)

// Plugin is a configured build plugin.
type Plugin interface {
	Name() string
}

// Factory creates a plugin from its descriptor options.
type Factory func(options map[string]any) (Plugin, error)

// File is an output produced by an Emitter, relative to the output dir.
type File struct {
	Path string
	Data []byte
}

// BuildContext is what emitters see of the build.
type BuildContext struct {
	Site     *config.SiteDescriptor
	Docs     *docs.Set
	Markdown *docs.Markdown
	Log      *logger.Logger
}

// Emitter is implemented by plugins that write files into the output.
type Emitter interface {
	Emit(ctx context.Context, bc *BuildContext) ([]File, error)
}

// Registry maps plugin names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry with the built-in plugins and presets.
func Default() *Registry {
	r := NewRegistry()
	for name, f := range builtins {
		r.factories[name] = f
	}
	return r
}

// Register adds a factory. Names must be unique.
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" || f == nil {
		return fmt.Errorf("plugin name and factory are required")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Names lists registered plugin names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve reports whether a plugin with the name is registered.
func (r *Registry) Resolve(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// ResolvePlugin implements config.PluginResolver: the name must be
// registered and the factory must accept the options.
func (r *Registry) ResolvePlugin(name string, options map[string]any) error {
	_, err := r.New(name, options)
	return err
}

// New creates a plugin instance.
func (r *Registry) New(name string, options map[string]any) (Plugin, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("plugin %q is not registered", name)
	}
	p, err := f(options)
	if err != nil {
		return nil, fmt.Errorf("configuring plugin %q: %w", name, err)
	}
	return p, nil
}

// Instantiate creates every plugin of the descriptor in declaration order.
func (r *Registry) Instantiate(descs []config.PluginDescriptor) ([]Plugin, error) {
	out := make([]Plugin, 0, len(descs))
	for _, d := range descs {
		p, err := r.New(d.Name, d.Options)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// decodeOptions decodes an option map into out, rejecting unknown keys.
func decodeOptions(options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(options)
}
