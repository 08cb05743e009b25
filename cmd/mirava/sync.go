package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"mirava/internal/oplog"
	"mirava/internal/scan"
	"mirava/internal/state"
	"mirava/internal/ui"
)

type syncOptions struct {
	dryRun bool
	json   bool
}

func parseSyncArgs(args []string) (syncOptions, bool, error) {
	var opts syncOptions
	for _, a := range args {
		switch a {
		case "--dry-run", "-n":
			opts.dryRun = true
		case "--json":
			opts.json = true
		case "--help", "-h":
			return opts, true, nil
		default:
			return opts, false, fmt.Errorf("unknown option for sync: %s", a)
		}
	}
	return opts, false, nil
}

func cmdSync(args []string) error {
	opts, help, err := parseSyncArgs(args)
	if err != nil {
		return err
	}
	if help {
		printSyncHelp()
		return nil
	}

	start := time.Now()
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := runSync(ctx, rt, opts)
	if !opts.dryRun {
		logArgs := map[string]any{
			"seen":    rep.Seen,
			"added":   rep.Added,
			"removed": len(rep.Removed),
			"skipped": len(rep.Skipped),
		}
		status := statusFromErr(err)
		if err == nil && len(rep.Skipped) > 0 {
			status = oplog.StatusPartial
		}
		rt.recordOpStatus("sync", status, start, logArgs, err)
	}
	return err
}

// runSync loads the course, reconciles it with the disk, shows the result
// and saves it. With dryRun the state file is left alone and a diff of what
// would have been written is printed instead.
func runSync(ctx context.Context, rt *runtime, opts syncOptions) (scan.Report, error) {
	c, err := state.Load(rt.root)
	if err != nil {
		return scan.Report{}, err
	}

	var before []byte
	if opts.dryRun {
		before, err = os.ReadFile(state.Path(rt.root))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return scan.Report{}, fmt.Errorf("failed to read state: %w", err)
		}
	}

	if c.Name == "" {
		if opts.dryRun || opts.json {
			c.Name = defaultCourseName(rt.root)
		} else {
			c.Name = promptCourseName(rt.root)
		}
	}

	rec, err := rt.reconciler()
	if err != nil {
		return scan.Report{}, err
	}

	var sp *ui.Spinner
	if !opts.json {
		sp = ui.StartSpinner("Scanning " + rt.root)
		rec.Observer = scan.ObserverFunc(func(rel string) { sp.Update(rel) })
	}

	rep, err := scan.Sync(ctx, rt.root, c, rec)
	if err != nil {
		if sp != nil {
			sp.Fail("Scan interrupted")
		}
		return rep, err
	}
	if sp != nil {
		sp.Success(fmt.Sprintf("Scanned %d videos", rep.Seen))
	}

	after, err := state.Encode(c)
	if err != nil {
		return rep, err
	}

	if opts.json {
		ui.Out.Write(after)
	} else {
		printCourse(ui.Out, c)
	}

	if opts.dryRun {
		fmt.Fprintln(ui.Out)
		printStateDiff(string(before), string(after))
		if !opts.json {
			ui.Info("Dry run: %s was not written", state.FileName)
		}
		return rep, nil
	}

	if err := state.Save(rt.root, c); err != nil {
		return rep, err
	}
	if opts.json {
		return rep, nil
	}

	fmt.Fprintln(ui.Out)
	ui.SummaryLine("Sync", rep.Duration,
		ui.Metric{Label: "added", Count: rep.Added},
		ui.Metric{Label: "removed", Count: len(rep.Removed)},
		ui.Metric{Label: "unknown duration", Count: len(rep.Unknown)},
		ui.Metric{Label: "skipped", Count: len(rep.Skipped)},
	)
	if len(rep.Skipped) > 0 {
		lines := make([]string, 0, len(rep.Skipped))
		for _, s := range rep.Skipped {
			lines = append(lines, fmt.Sprintf("%s: %s", s.Path, s.Reason))
		}
		ui.WarningBox("Skipped paths", lines...)
	}
	return rep, nil
}

func printSyncHelp() {
	fmt.Fprintln(ui.Out, `Usage: mirava [sync] [options]

Scan the course for videos, merge them into the tracked list, drop videos
that are gone, show the list and save it.

Options:
  --dry-run, -n   Show what would change without writing the state file
  --json          Print the course as JSON instead of the table
  --help, -h      Show this help`)
}
