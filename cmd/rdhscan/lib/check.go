package lib

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/itsdaq/rdhscan"
	"github.com/itsdaq/rdhscan/config"
	"github.com/itsdaq/rdhscan/internal/rlog"
	"github.com/itsdaq/rdhscan/internal/shutdown"
	"github.com/itsdaq/rdhscan/report"
	"github.com/itsdaq/rdhscan/validator"
)

// CheckOptions collects every flag relevant to `rdhscan check`
// (spec.md §6).
type CheckOptions struct {
	Target     string // "sanity" or "all"
	SubTarget  string // "its" (default) or "its-stave"
	Filter     FilterOptions
	ChecksTOML io.Reader // nil when --checks-toml is unset

	OutputStats string // "" | "stdout" | path
	StatsFormat config.Format
	InputStats  io.Reader // nil when --input-stats-file is unset

	MuteErrors        bool
	TolerateMaxErrors uint32
	AnyErrorsExitCode int

	Shutdown *shutdown.Flag
}

// ModeFor resolves the two check-target flags to a validator.Mode (spec.md
// §8 scenarios 3 and 6 distinguish `check sanity its` from `check all
// its`/`check all its-stave`).
func (o CheckOptions) ModeFor() (validator.Mode, error) {
	sub := strings.ToLower(o.SubTarget)
	if sub == "" {
		sub = "its"
	}
	switch strings.ToLower(o.Target) {
	case "sanity":
		return validator.ModeSanity, nil
	case "all":
		if sub == "its-stave" {
			return validator.ModeAllStave, nil
		}
		if sub == "its" {
			return validator.ModeAll, nil
		}
		return 0, fmt.Errorf("unrecognised check target %q", o.SubTarget)
	default:
		return 0, fmt.Errorf("unrecognised check command %q, want sanity|all", o.Target)
	}
}

// RunCheck drives one `check` invocation end to end and returns the
// process exit code (spec.md §6's policy, centralised in ExitCode).
func RunCheck(opts CheckOptions, in io.Reader, stdout, stderr io.Writer) int {
	mode, err := opts.ModeFor()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	checks, err := rdhscan.LoadChecks(opts.ChecksTOML)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	keep, err := opts.Filter.Keep()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var reference *config.StatsDoc
	if opts.InputStats != nil {
		doc, err := config.DecodeStatsDoc(opts.InputStats, opts.StatsFormat)
		if err != nil {
			fmt.Fprintln(stderr, "input-stats-file:", err)
			return 1
		}
		reference = &doc
	}

	sd := opts.Shutdown
	if sd == nil {
		sd = shutdown.New()
	}

	summary, runErr := rdhscan.Run(in,
		rdhscan.WithMode(mode),
		rdhscan.WithChecks(checks),
		rdhscan.WithKeep(keep),
		rdhscan.WithMaxErrors(opts.TolerateMaxErrors),
		rdhscan.WithShutdown(sd),
		rdhscan.WithReference(reference),
	)
	if runErr != nil {
		rlog.CLI.Errorf("stream error: %v", runErr)
	}

	if !opts.MuteErrors {
		for _, e := range summary.Errors {
			fmt.Fprintf(stderr, "%#x: [%s] %s\n", e.Offset, e.Code, e.Msg)
		}
	}

	report.Write(stdout, summary)

	if opts.OutputStats != "" {
		if err := writeStatsDoc(opts.OutputStats, opts.StatsFormat, summary.Doc, stdout); err != nil {
			fmt.Fprintln(stderr, "output-stats:", err)
			return 1
		}
	}

	return ExitCode(runErr, summary.Doc.TotalErrors, opts.AnyErrorsExitCode)
}

func writeStatsDoc(dest string, format config.Format, doc config.StatsDoc, stdout io.Writer) error {
	if dest == "stdout" {
		return doc.Encode(stdout, format)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()
	return doc.Encode(f, format)
}
