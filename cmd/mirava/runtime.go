package main

import (
	"fmt"
	"os"
	"time"

	"mirava/internal/config"
	"mirava/internal/course"
	mlog "mirava/internal/log"
	"mirava/internal/oplog"
	"mirava/internal/probe"
	"mirava/internal/scan"
)

// runtime is what every command needs before it touches state: the
// operator's settings and the course root for the working directory.
type runtime struct {
	cfg   *config.Config
	root  string
	found bool
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	mlog.Configure(mlog.Config{Level: cfg.Log.Level})

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working directory: %w", err)
	}
	root, found, err := course.Locate(cwd)
	if err != nil {
		return nil, err
	}
	cliLog := mlog.WithComponent("cli")
	cliLog.Debug().Str("root", root).Bool("existing", found).Msg("course root")
	return &runtime{cfg: cfg, root: root, found: found}, nil
}

// newProber builds the duration prober; tests replace it.
var newProber = func(cfg *config.Config) (probe.Prober, error) {
	timeout, err := cfg.ProbeTimeout()
	if err != nil {
		return nil, err
	}
	return probe.NewFFprobe(cfg.Probe.FFprobeBin, timeout), nil
}

func (rt *runtime) reconciler() (*scan.Reconciler, error) {
	prober, err := newProber(rt.cfg)
	if err != nil {
		return nil, err
	}
	classifier := scan.NewExtClassifier(rt.cfg.Scan.ExtraExtensions, rt.cfg.SniffContent())
	return scan.NewReconciler(classifier, prober, scan.Options{
		Exclude:    rt.cfg.Scan.Exclude,
		SkipHidden: rt.cfg.Scan.SkipHidden,
	}), nil
}

// recordOp appends one entry to the operation log. Failures are logged and
// otherwise ignored.
func (rt *runtime) recordOp(cmd string, start time.Time, args map[string]any, err error) {
	rt.recordOpStatus(cmd, statusFromErr(err), start, args, err)
}

func (rt *runtime) recordOpStatus(cmd, status string, start time.Time, args map[string]any, err error) {
	e := oplog.NewEntry(cmd, rt.root, status, time.Since(start))
	e.Args = args
	if err != nil {
		e.Message = err.Error()
	}
	if werr := oplog.WriteWithLimit(config.LogsDir(), oplog.OpsFile, e, rt.cfg.MaxLogEntries()); werr != nil {
		opLog := mlog.WithComponent("oplog")
		opLog.Debug().Err(werr).Msg("could not write operation log")
	}
}

// statusFromErr returns "ok" for nil errors and "error" otherwise.
func statusFromErr(err error) string {
	if err == nil {
		return oplog.StatusOK
	}
	return oplog.StatusError
}
