// Package builder turns a validated specification plus architecture into
// framework source files and packages them into an installable artifact.
package builder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"singularity/internal/spec"
)

// ErrUnsupportedPlatform reports a framework tag with no registered
// builder. The validator's enum coercion makes this unreachable in the
// normal pipeline; the registry still defends against it.
var ErrUnsupportedPlatform = errors.New("builder: unsupported platform")

// FileSet maps relative file paths to generated content.
type FileSet map[string]string

// Result is the outcome of a successful build.
type Result struct {
	ArtifactPath string
	ArtifactName string
	BuildLog     []string
	Elapsed      time.Duration
}

// Builder generates source for one framework and packages it. Builders are
// stateless across jobs.
type Builder interface {
	Framework() string
	GenerateCode(app spec.AppSpecification, arch spec.Architecture) FileSet
	BuildArtifact(ctx context.Context, app spec.AppSpecification, files FileSet) (Result, error)
}

// Registry resolves a framework tag to its builder in O(1).
type Registry struct {
	builders map[string]Builder
}

// NewRegistry registers the five platform builders against the given build
// backend.
func NewRegistry(backend Backend) *Registry {
	r := &Registry{builders: make(map[string]Builder)}
	r.Register(&ReactNativeBuilder{backend: backend})
	r.Register(&FlutterBuilder{backend: backend})
	r.Register(&KivyBuilder{backend: backend})
	r.Register(&CordovaBuilder{backend: backend})
	r.Register(&NativeAndroidBuilder{backend: backend})
	return r
}

func (r *Registry) Register(b Builder) {
	r.builders[b.Framework()] = b
}

func (r *Registry) Lookup(framework string) (Builder, error) {
	b, ok := r.builders[strings.ToLower(strings.TrimSpace(framework))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, framework)
	}
	return b, nil
}

// Frameworks lists the registered framework tags.
func (r *Registry) Frameworks() []string {
	out := make([]string, 0, len(r.builders))
	for _, f := range spec.Frameworks {
		if _, ok := r.builders[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// packageID derives the Android application id from the app name.
func packageID(app spec.AppSpecification) string {
	return "com.singularity." + slug(app.Name, "")
}

func slug(name, sep string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", sep)
}
