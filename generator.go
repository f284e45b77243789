// Package svcgen generates Swift HTTP client services from annotated
// declarations.
//
// A run filters the declaration set into models and services, derives a
// scheme for every service, and emits one artifact per service plus four
// fixed utility artifacts:
//
//	set, err := decl.LoadDir("./api")
//	...
//	res, err := svcgen.FromDeclarations(set).
//	    Project("Shop").
//	    ServiceDir("Sources/Services").
//	    ModelDir("Sources/Models").
//	    ToSink(ctx, sink.NewFilesystemSink("."))
package svcgen

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/broady/svcgen/decl"
	"github.com/broady/svcgen/scheme"
	"github.com/broady/svcgen/sink"
	"github.com/broady/svcgen/swift"
)

// writeConcurrency bounds the number of artifacts written at once.
const writeConcurrency = 8

// Result holds the outcome of a generation run.
type Result struct {
	// Artifacts are the generated files: the four utilities first, then one
	// per successfully derived service in declaration order.
	Artifacts []swift.Artifact

	// Services is the number of service entities in the declaration set.
	Services int

	// Warnings are non-fatal diagnostics, such as a defaulted HTTP verb.
	Warnings []*scheme.Diagnostic

	// Failures holds one diagnostic per service whose derivation failed.
	Failures []*scheme.Diagnostic
}

// Err joins all failures into one error, or returns nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Generate derives and emits every service in set.
// A failing service is recorded in Result.Failures and the remaining
// services are still generated. The returned error joins all failures;
// the Result is returned alongside it.
func Generate(set *decl.Set, cfg *Config) (*Result, error) {
	if set == nil {
		return nil, errors.New("declaration set is nil")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := scheme.NewContext(set.Models())
	ctx.StrictVerb = cfg.StrictVerb

	emitter := &swift.Emitter{Project: cfg.ProjectName, Indent: cfg.IndentSize}
	services := set.Services()
	res := &Result{
		Services:  len(services),
		Artifacts: emitter.Utilities(cfg.ModelOutputDir),
	}

	for _, svc := range services {
		s, err := scheme.DeriveService(ctx, svc, cfg.suffix())
		if err != nil {
			res.Failures = append(res.Failures, asDiagnostic(err, svc))
			continue
		}
		res.Artifacts = append(res.Artifacts, emitter.Service(s, cfg.ServiceOutputDir))
	}
	res.Warnings = ctx.Warnings

	return res, res.Err()
}

func asDiagnostic(err error, svc decl.Entity) *scheme.Diagnostic {
	var d *scheme.Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return &scheme.Diagnostic{
		Severity: scheme.SeverityError,
		Message:  fmt.Sprintf("service %s: %v", svc.Name, err),
		Source:   svc.Source,
	}
}

// Write writes artifacts to s concurrently. It returns the first error
// encountered; remaining writes are cancelled.
func Write(ctx context.Context, s sink.OutputSink, artifacts []swift.Artifact) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(writeConcurrency)
	for _, a := range artifacts {
		a := a
		g.Go(func() error {
			if err := s.WriteFile(ctx, a.Path, []byte(a.Text)); err != nil {
				return fmt.Errorf("write %s: %w", a.Path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// Generator provides a fluent API for code generation.
// Create with FromDeclarations and configure with method chaining.
type Generator struct {
	set *decl.Set
	cfg Config
}

// FromDeclarations creates a Generator for set with the default config.
func FromDeclarations(set *decl.Set) *Generator {
	return &Generator{set: set, cfg: *DefaultConfig()}
}

// WithConfig replaces the whole configuration.
func (g *Generator) WithConfig(cfg *Config) *Generator {
	g.cfg = *cfg
	return g
}

// Project sets the project name written into file headers.
func (g *Generator) Project(name string) *Generator {
	g.cfg.ProjectName = name
	return g
}

// ServiceDir sets the output directory of generated services.
func (g *Generator) ServiceDir(dir string) *Generator {
	g.cfg.ServiceOutputDir = dir
	return g
}

// ModelDir sets the output directory of the utility files.
func (g *Generator) ModelDir(dir string) *Generator {
	g.cfg.ModelOutputDir = dir
	return g
}

// Suffix sets the generated class name suffix.
func (g *Generator) Suffix(suffix string) *Generator {
	g.cfg.NameSuffix = suffix
	return g
}

// Indent sets the number of spaces per indentation level.
func (g *Generator) Indent(size int) *Generator {
	g.cfg.IndentSize = size
	return g
}

// Strict makes a missing HTTP verb annotation an error.
func (g *Generator) Strict() *Generator {
	g.cfg.StrictVerb = true
	return g
}

// Generate returns the artifacts in memory without writing them.
func (g *Generator) Generate() (*Result, error) {
	return Generate(g.set, &g.cfg)
}

// ToSink generates and writes the artifacts to s.
// Nothing is written when any service fails.
func (g *Generator) ToSink(ctx context.Context, s sink.OutputSink) (*Result, error) {
	res, err := g.Generate()
	if err != nil {
		return res, err
	}
	if err := Write(ctx, s, res.Artifacts); err != nil {
		return res, err
	}
	return res, nil
}
