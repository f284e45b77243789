package check

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/broady/svcgen"
	"github.com/broady/svcgen/cmd/svcgen/internal/inputs"
)

type Cmd struct {
	inputs.Flags `embed:""`

	// Out receives the summary. Defaults to os.Stdout.
	Out io.Writer `kong:"-"`
}

func (c *Cmd) Run(log *zerolog.Logger) error {
	cfg, set, err := c.Load()
	if err != nil {
		return err
	}

	res, err := svcgen.Generate(set, cfg)
	if res == nil {
		return err
	}
	inputs.LogDiagnostics(*log, res)

	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "models:   %d\n", len(set.Models()))
	fmt.Fprintf(out, "services: %d (%d failed)\n", res.Services, len(res.Failures))
	fmt.Fprintf(out, "warnings: %d\n", len(res.Warnings))

	if err != nil {
		return fmt.Errorf("%d of %d services failed", len(res.Failures), res.Services)
	}
	return nil
}
