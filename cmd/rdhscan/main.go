// Command rdhscan is the CLI entrypoint: `check`, `view`, and `filter`
// subcommands plus the global flags spec.md §6 enumerates, built on
// github.com/urfave/cli/v2. Grounded on carve/carve.go's cli.App{...} +
// Commands []*cli.Command{} assembly (the teacher's only standalone
// main() using this framework) and cmd/car's split between thin
// per-command Action funcs and a lib package doing the real work.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/itsdaq/rdhscan/internal/rlog"
	"github.com/itsdaq/rdhscan/internal/shutdown"
)

// appShutdown is the single cross-thread flag spec.md §5 names,
// requested once by the SIGINT handler below and polled by Run's read
// loop every iteration.
var appShutdown = shutdown.New()

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go func() {
		<-ctx.Done()
		appShutdown.Request()
	}()

	app := &cli.App{
		Name:                 "rdhscan",
		Usage:                "verify and inspect ALICE ITS readout data streams",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "filter-link", Usage: "keep only this link id (0-31)"},
			&cli.Uint64Flag{Name: "filter-fee", Usage: "keep only this fee id"},
			&cli.StringFlag{Name: "filter-its-stave", Usage: "keep only this stave, form LX_YZ"},
			&cli.StringFlag{Name: "checks-toml", Usage: "path to a --checks-toml configurable-check document"},
			&cli.StringFlag{Name: "output-stats", Usage: "write the run's stats document to PATH, or \"stdout\""},
			&cli.StringFlag{Name: "stats-format", Value: "json", Usage: "json|toml"},
			&cli.StringFlag{Name: "input-stats-file", Usage: "reconcile the run's stats against a reference document"},
			&cli.BoolFlag{Name: "mute-errors", Usage: "suppress per-error stderr lines (the summary still counts them)"},
			&cli.UintFlag{Name: "tolerate-max-errors", Usage: "cap retained error records; 0 is unlimited"},
			&cli.IntFlag{Name: "verbosity", Value: 0, Usage: "0 errors, 1 +warn, 2 +info, 3 +debug, 4 +trace"},
			&cli.IntFlag{Name: "any-errors-exit-code", Value: 1, Usage: "process exit code when any validation error was seen"},
		},
		Before: func(c *cli.Context) error {
			rlog.Configure(rlog.Verbosity(c.Int("verbosity")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "check {sanity|all} [its|its-stave] [FILE]",
				ArgsUsage: "{sanity|all} [its|its-stave] [FILE]",
				Action:    CheckCommand,
			},
			{
				Name:      "view",
				Usage:     "view {rdh|its-readout-frames|its-readout-frames-data} [FILE]",
				ArgsUsage: "{rdh|its-readout-frames|its-readout-frames-data} [FILE]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sizes", Usage: "human|bytes, for the rdh view's payload column"},
				},
				Action: ViewCommand,
			},
			{
				Name:      "filter",
				Usage:     "filter [FILE] > out.bin -- re-emit accepted CDPs as a binary stream",
				ArgsUsage: "[FILE]",
				Action:    FilterCommand,
			},
			{
				Name:   "generate-checks-toml",
				Usage:  "print the checks-toml document's recognised keys with their defaults",
				Action: GenerateChecksTOMLCommand,
			},
			{
				Name:      "generate-completions",
				Usage:     "print a shell completion script",
				ArgsUsage: "{bash|zsh}",
				Action:    GenerateCompletionsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			if msg := ec.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(ec.ExitCode())
		}
		log.Println(err)
		os.Exit(1)
	}
}

// openInput opens the file named by the command's last positional
// argument, or os.Stdin when none is given (spec.md §6 "Regular file path,
// or standard input when no path is given").
func openInput(c *cli.Context) (io.Reader, func(), error) {
	if c.Args().Len() == 0 {
		return os.Stdin, func() {}, nil
	}
	return openInputPath(c.Args().Get(c.Args().Len() - 1))
}

// openInputPath is openInput's path-already-known form, used by commands
// (check) that must parse their own positional args before knowing which
// token, if any, names a file.
func openInputPath(path string) (io.Reader, func(), error) {
	if path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
