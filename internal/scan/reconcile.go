// Package scan walks a course directory and brings the tracked video list in
// line with what is on disk.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mirava/internal/course"
	mlog "mirava/internal/log"
	"mirava/internal/probe"
	"mirava/internal/state"
)

// Options tune which parts of the tree are walked.
type Options struct {
	// Exclude lists course-relative directories (forward slashes) to skip.
	Exclude []string
	// SkipHidden skips directories whose name starts with a dot.
	SkipHidden bool
}

// Observer is notified for every video file found, before it is probed.
type Observer interface {
	OnFile(rel string)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(rel string)

func (f ObserverFunc) OnFile(rel string) { f(rel) }

// Skip is a path the walk could not enter or read.
type Skip struct {
	Path   string
	Reason string
}

// Report summarizes one scan.
type Report struct {
	Seen    int
	Added   int
	Updated int
	Skipped []Skip
	// Unknown lists videos whose duration could not be probed.
	Unknown  []string
	Removed  []state.Video
	Duration time.Duration
}

// Reconciler merges the files under a course root into a Course.
type Reconciler struct {
	Classifier Classifier
	Prober     probe.Prober
	Options    Options
	Observer   Observer
}

// NewReconciler returns a Reconciler using classifier and prober.
func NewReconciler(classifier Classifier, prober probe.Prober, opts Options) *Reconciler {
	return &Reconciler{
		Classifier: classifier,
		Prober:     prober,
		Options:    opts,
	}
}

// frame is one directory on the work-list with its unread entries. The
// stack of frames is always the current descent path.
type frame struct {
	dir     string
	key     any
	entries []os.DirEntry
	next    int
}

// Reconcile walks root depth-first and upserts every video into c. Records
// not seen keep Found=false; call PruneAbsent (or use Sync) to drop them.
// Per-entry failures are collected in the report. Only cancellation of ctx
// aborts the walk.
func (r *Reconciler) Reconcile(ctx context.Context, root string, c *state.Course) (Report, error) {
	start := time.Now()
	var rep Report
	log := mlog.WithComponent("scan")

	if r.Classifier == nil || r.Prober == nil {
		return rep, fmt.Errorf("reconciler needs a classifier and a prober")
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return rep, fmt.Errorf("failed to resolve course root: %w", err)
	}
	root = filepath.Clean(root)

	excluded := make(map[string]struct{}, len(r.Options.Exclude))
	for _, ex := range r.Options.Exclude {
		ex = path.Clean(filepath.ToSlash(strings.TrimSpace(ex)))
		if ex != "." && ex != "" {
			excluded[ex] = struct{}{}
		}
	}

	c.ResetFound()

	var stack []*frame

	// Only directories on the current path are refused, so an alias of a
	// sibling directory is walked again and yields its own records.
	enter := func(dir string) {
		key, err := identify(dir)
		if err != nil {
			skip(log, &rep, dir, root, err)
			return
		}
		for _, f := range stack {
			if f.key == key {
				log.Debug().Str("dir", dir).Msg("directory loops back to an ancestor, skipping")
				return
			}
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			skip(log, &rep, dir, root, err)
			// ReadDir may still return the entries it managed to read.
		}
		if len(entries) > 0 {
			stack = append(stack, &frame{dir: dir, key: key, entries: entries})
		}
	}

	enter(root)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			rep.Duration = time.Since(start)
			return rep, err
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}
		entry := top.entries[top.next]
		top.next++

		name := entry.Name()
		full := filepath.Join(top.dir, name)

		isDir := entry.IsDir()
		isRegular := entry.Type().IsRegular()
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(full)
			if err != nil {
				skip(log, &rep, full, root, fmt.Errorf("broken symlink: %w", err))
				continue
			}
			isDir = info.IsDir()
			isRegular = info.Mode().IsRegular()
		}

		if isDir {
			if r.Options.SkipHidden && strings.HasPrefix(name, ".") {
				continue
			}
			if _, ok := excluded[course.Relativize(full, root)]; ok {
				continue
			}
			enter(full)
			continue
		}

		if name == state.FileName || !isRegular {
			continue
		}
		if !r.Classifier.IsVideo(full) {
			continue
		}

		rel := course.Relativize(full, root)
		rep.Seen++
		if r.Observer != nil {
			r.Observer.OnFile(rel)
		}

		dur, err := r.Prober.Duration(ctx, full)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
				rep.Duration = time.Since(start)
				return rep, ctxErr
			}
			log.Warn().Err(err).Str("file", rel).Msg("could not read duration")
			dur = 0
		}
		if dur <= 0 {
			rep.Unknown = append(rep.Unknown, rel)
		}

		if c.UpsertFromScan(rel, dur) {
			rep.Added++
		} else {
			rep.Updated++
		}
	}

	if err := ctx.Err(); err != nil {
		rep.Duration = time.Since(start)
		return rep, err
	}

	rep.Duration = time.Since(start)
	log.Debug().
		Int("seen", rep.Seen).
		Int("added", rep.Added).
		Int("skipped", len(rep.Skipped)).
		Dur("took", rep.Duration).
		Msg("scan finished")
	return rep, nil
}

func skip(log zerolog.Logger, rep *Report, full, root string, err error) {
	rel := course.Relativize(full, root)
	if rel == "" {
		rel = "."
	}
	rep.Skipped = append(rep.Skipped, Skip{Path: rel, Reason: err.Error()})
	log.Warn().Err(err).Str("path", rel).Msg("skipping unreadable path")
}
