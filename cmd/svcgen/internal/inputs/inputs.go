// Package inputs resolves the declaration set and generator config shared
// by the gen and check commands.
package inputs

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/broady/svcgen"
	"github.com/broady/svcgen/decl"
	"github.com/broady/svcgen/scheme"
)

// Flags are embedded into every command that runs derivation.
//
// Config values are layered: defaults, then the --config file, then -D
// params, then explicit flags.
type Flags struct {
	Config        string   `help:"YAML config file." short:"c" type:"path"`
	Project       string   `help:"Project name written into file headers."`
	InputService  string   `help:"Directory of service manifests." name:"input-service" default:"." type:"path"`
	InputModel    string   `help:"Directory of model manifests (default: --input-service)." name:"input-model" type:"path"`
	OutputService string   `help:"Output directory for generated services." name:"output-service"`
	OutputModel   string   `help:"Output directory for utility files." name:"output-model"`
	Params        []string `help:"Execution parameter as key=value." short:"D" name:"param" placeholder:"KEY=VALUE"`
	StrictVerb    bool     `help:"Fail on methods without an HTTP verb annotation." name:"strict-verb"`
}

// LoadConfig builds the effective generator config.
func (f *Flags) LoadConfig() (*svcgen.Config, error) {
	cfg := svcgen.DefaultConfig()
	if f.Config != "" {
		var err error
		if cfg, err = svcgen.LoadConfig(f.Config); err != nil {
			return nil, err
		}
	}

	params, err := svcgen.ParseParams(f.Params)
	if err != nil {
		return nil, err
	}
	if err := svcgen.ApplyParams(cfg, params); err != nil {
		return nil, err
	}

	if f.Project != "" {
		cfg.ProjectName = f.Project
	}
	if f.OutputService != "" {
		cfg.ServiceOutputDir = f.OutputService
	}
	if f.OutputModel != "" {
		cfg.ModelOutputDir = f.OutputModel
	}
	if f.StrictVerb {
		cfg.StrictVerb = true
	}
	return cfg, cfg.Validate()
}

// LoadDeclarations reads the service manifests and, when a separate model
// directory is given, merges its manifests after them.
func (f *Flags) LoadDeclarations() (*decl.Set, error) {
	set, err := decl.LoadDir(f.InputService)
	if err != nil {
		return nil, err
	}
	if f.InputModel == "" || sameDir(f.InputModel, f.InputService) {
		return set, nil
	}
	models, err := decl.LoadDir(f.InputModel)
	if err != nil {
		return nil, err
	}
	return set.Merge(models), nil
}

// Load returns both the config and the declaration set.
func (f *Flags) Load() (*svcgen.Config, *decl.Set, error) {
	cfg, err := f.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	set, err := f.LoadDeclarations()
	if err != nil {
		return nil, nil, fmt.Errorf("load declarations: %w", err)
	}
	return cfg, set, nil
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// LogDiagnostics logs every warning and failure of res.
func LogDiagnostics(log zerolog.Logger, res *svcgen.Result) {
	for _, d := range res.Warnings {
		event(log, d).Msg(d.Message)
	}
	for _, d := range res.Failures {
		event(log, d).Msg(d.Message)
	}
}

func event(log zerolog.Logger, d *scheme.Diagnostic) *zerolog.Event {
	e := log.Error()
	if d.Severity == scheme.SeverityWarning {
		e = log.Warn()
	}
	if d.Code != "" {
		e = e.Str("code", string(d.Code))
	}
	return e.Str("source", d.Source.String())
}
