package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mirava/internal/progress"
	"mirava/internal/state"
	"mirava/internal/ui"
)

// parseVideoNumbers converts display numbers. Range checks happen against
// the loaded course.
func parseVideoNumbers(args []string) ([]int, error) {
	nums := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("invalid video number: '%s'", a)
		}
		nums = append(nums, n)
	}
	return nums, nil
}

func cmdSet(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: mirava set <num> <value>")
	}
	nums, err := parseVideoNumbers(args[:1])
	if err != nil {
		return err
	}

	start := time.Now()
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	v, err := runSet(rt.root, nums[0], args[1])
	logArgs := map[string]any{"number": nums[0], "value": args[1]}
	if v != nil {
		logArgs["video"] = v.Path
		logArgs["watched_sec"] = v.WatchedSec
	}
	rt.recordOp("set", start, logArgs, err)
	return err
}

// runSet resolves value against video n and saves. Nothing is written when
// the number or the value is invalid.
func runSet(root string, n int, value string) (*state.Video, error) {
	c, err := state.Load(root)
	if err != nil {
		return nil, err
	}
	v, err := c.At(n)
	if err != nil {
		return nil, err
	}
	secs, err := progress.Resolve(value, v.DurationSec)
	if err != nil {
		return nil, err
	}

	v.WatchedSec = progress.Clamp(secs, v.DurationSec)
	if err := state.Save(root, c); err != nil {
		return nil, err
	}
	ui.Success("Updated video %d ('%s') to %d seconds.", n, v.Path, v.WatchedSec)
	out := *v
	return &out, nil
}

func cmdMark(args []string) error {
	return cmdMarkAs("mark", args, true)
}

func cmdUnmark(args []string) error {
	return cmdMarkAs("unmark", args, false)
}

func cmdMarkAs(name string, args []string, watched bool) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: mirava %s <num> [num...]", name)
	}
	nums, err := parseVideoNumbers(args)
	if err != nil {
		return err
	}

	start := time.Now()
	rt, err := loadRuntime()
	if err != nil {
		return err
	}

	paths, err := runMark(rt.root, nums, watched)
	rt.recordOp(name, start, map[string]any{"numbers": nums, "videos": paths}, err)
	return err
}

// runMark sets every listed video to fully watched (or back to zero). All
// numbers are checked before anything changes.
func runMark(root string, nums []int, watched bool) ([]string, error) {
	c, err := state.Load(root)
	if err != nil {
		return nil, err
	}
	for _, n := range nums {
		if _, err := c.At(n); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(nums))
	for _, n := range nums {
		v, _ := c.At(n)
		if watched {
			v.WatchedSec = progress.Complete(v.DurationSec)
		} else {
			v.WatchedSec = 0
		}
		paths = append(paths, v.Path)
	}

	if err := state.Save(root, c); err != nil {
		return nil, err
	}
	for i, n := range nums {
		if watched {
			ui.Success("Marked video %d ('%s') as watched.", n, paths[i])
		} else {
			ui.Success("Marked video %d ('%s') as unwatched.", n, paths[i])
		}
	}
	return paths, nil
}
