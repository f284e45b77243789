package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/broady/svcgen/cmd/svcgen/internal/check"
	"github.com/broady/svcgen/cmd/svcgen/internal/gen"
)

type CLI struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"info" name:"log-level" enum:"debug,info,warn,error"`
	JSONLog  bool   `help:"Log JSON lines instead of console output." name:"json-log"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Swift service classes and utility files."`
	Check   check.Cmd  `cmd:"" help:"Derive every service and report diagnostics without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func newLogger(cli *CLI) zerolog.Logger {
	level, err := zerolog.ParseLevel(cli.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cli.JSONLog {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("svcgen"),
		kong.Description("Generate Swift HTTP client services from annotated declarations."),
		kong.UsageOnError(),
	)
	log := newLogger(cli)
	err := ctx.Run(&log)
	ctx.FatalIfErrorf(err)
}
