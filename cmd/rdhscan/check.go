package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/itsdaq/rdhscan/cmd/rdhscan/lib"
	"github.com/itsdaq/rdhscan/config"
)

// subTargets is the set of known check-target tokens (spec.md §8's
// "check sanity its"/"check all its-stave" scenarios), used to tell a
// target token apart from a trailing file path positional.
var subTargets = map[string]bool{"its": true, "its-stave": true}

// parseCheckArgs splits `check {sanity|all} [its|its-stave] [FILE]`'s
// positional args: the target is always first, the next token is consumed
// as a sub-target only if it is one of the known forms, and anything left
// over is the input file path.
func parseCheckArgs(c *cli.Context) (target, subTarget, file string) {
	args := c.Args().Slice()
	if len(args) == 0 {
		return "", "", ""
	}
	target = args[0]
	rest := args[1:]
	if len(rest) > 0 && subTargets[strings.ToLower(rest[0])] {
		subTarget = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		file = rest[len(rest)-1]
	}
	return target, subTarget, file
}

// CheckCommand is `rdhscan check {sanity|all} [its|its-stave] [FILE]`
// (spec.md §6, §8).
func CheckCommand(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("check requires a sanity|all argument")
	}
	target, subTarget, file := parseCheckArgs(c)

	opts := lib.CheckOptions{
		Target:            target,
		SubTarget:         subTarget,
		OutputStats:       c.String("output-stats"),
		StatsFormat:       config.Format(c.String("stats-format")),
		MuteErrors:        c.Bool("mute-errors"),
		TolerateMaxErrors: uint32(c.Uint("tolerate-max-errors")),
		AnyErrorsExitCode: c.Int("any-errors-exit-code"),
		Filter: lib.FilterOptions{
			Link:  filterIntFlag(c, "filter-link"),
			Fee:   filterIntFlag(c, "filter-fee"),
			Stave: c.String("filter-its-stave"),
		},
		Shutdown: appShutdown,
	}

	if p := c.String("checks-toml"); p != "" {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		opts.ChecksTOML = f
	}

	if p := c.String("input-stats-file"); p != "" {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		opts.InputStats = f
	}

	inStream, closeIn, err := openInputPath(file)
	if err != nil {
		return err
	}
	defer closeIn()

	code := lib.RunCheck(opts, inStream, os.Stdout, os.Stderr)
	if code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

// GenerateChecksTOMLCommand is `rdhscan generate-checks-toml`, wired as
// its own command rather than a bool flag action so it can write to
// stdout and exit before any input is opened.
func GenerateChecksTOMLCommand(c *cli.Context) error {
	return config.Generate(os.Stdout)
}

// filterIntFlag reads a --filter-link/--filter-fee style Uint64Flag,
// returning -1 (unset) when the user never set it, matching
// lib.FilterOptions' "< 0 means unset" convention.
func filterIntFlag(c *cli.Context, name string) int {
	if !c.IsSet(name) {
		return -1
	}
	return int(c.Uint64(name))
}
