package gen

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/broady/svcgen"
	"github.com/broady/svcgen/cmd/svcgen/internal/inputs"
	"github.com/broady/svcgen/sink"
)

type Cmd struct {
	inputs.Flags `embed:""`

	DryRun bool `help:"Print the paths that would be written without writing them." name:"dry-run" short:"n"`

	// Out receives dry-run output. Defaults to os.Stdout.
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
	if err != nil {
		return fmt.Errorf("%d of %d services failed, nothing written", len(res.Failures), res.Services)
	}

	if c.DryRun {
		out := c.Out
		if out == nil {
			out = os.Stdout
		}
		for _, a := range res.Artifacts {
			fmt.Fprintln(out, a.Path)
		}
		return nil
	}

	fs := sink.NewFilesystemSink(".")
	fs.Overwrite = cfg.Overwrite
	if err := svcgen.Write(context.Background(), fs, res.Artifacts); err != nil {
		return err
	}

	log.Info().
		Int("services", res.Services).
		Int("files", len(res.Artifacts)).
		Int("warnings", len(res.Warnings)).
		Msg("generated")
	return nil
}
