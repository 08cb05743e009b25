package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"mirava/internal/config"
	"mirava/internal/course"
	"mirava/internal/oplog"
	"mirava/internal/ui"
)

const defaultLogLimit = 20

type logOptions struct {
	limit  int
	here   bool
	clear  bool
	filter oplog.Filter
}

func parseLogArgs(args []string) (logOptions, bool, error) {
	opts := logOptions{limit: defaultLogLimit}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-n", "--tail":
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("%s requires a number", args[i])
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil || n <= 0 {
				return opts, false, fmt.Errorf("invalid entry count: '%s'", args[i])
			}
			opts.limit = n
		case "--cmd":
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("--cmd requires a command name")
			}
			i++
			opts.filter.Cmd = args[i]
		case "--since":
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("--since requires a time")
			}
			i++
			since, err := oplog.ParseSince(args[i])
			if err != nil {
				return opts, false, err
			}
			opts.filter.Since = since
		case "--here":
			opts.here = true
		case "--clear":
			opts.clear = true
		case "--help", "-h":
			return opts, true, nil
		default:
			return opts, false, fmt.Errorf("unknown option for log: %s", args[i])
		}
	}
	return opts, false, nil
}

func cmdLog(args []string) error {
	opts, help, err := parseLogArgs(args)
	if err != nil {
		return err
	}
	if help {
		printLogHelp()
		return nil
	}

	if opts.here {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		root, _, err := course.Locate(cwd)
		if err != nil {
			return err
		}
		opts.filter.Root = root
	}
	return runLog(config.LogsDir(), opts)
}

func runLog(dir string, opts logOptions) error {
	if opts.clear {
		if err := oplog.Clear(dir, oplog.OpsFile); err != nil {
			return fmt.Errorf("failed to clear log: %w", err)
		}
		ui.Success("Operation log cleared")
		return nil
	}

	// Filtering happens before the limit so -n counts matching entries.
	entries, err := oplog.Read(dir, oplog.OpsFile, 0)
	if err != nil {
		return fmt.Errorf("failed to read log: %w", err)
	}
	entries = oplog.FilterEntries(entries, opts.filter)
	if len(entries) > opts.limit {
		entries = entries[:opts.limit]
	}

	if len(entries) == 0 {
		ui.Info("No operation log entries")
		return nil
	}
	ui.Header(fmt.Sprintf("Operations (last %d)", len(entries)))
	for _, e := range entries {
		fmt.Fprintln(ui.Out, formatLogLine(e, ui.IsTTY()))
	}
	return nil
}

func formatLogLine(e oplog.Entry, color bool) string {
	ts := formatLogTimestamp(e.Timestamp)
	cmd := e.Command
	status := e.Status
	if color {
		ts = tc.Dim.Render(ts)
		cmd = tc.Title.Render(strings.ToUpper(cmd))
		switch e.Status {
		case oplog.StatusOK:
			status = tc.Green.Render(status)
		case oplog.StatusError:
			status = tc.Red.Render(status)
		default:
			status = tc.Yellow.Render(status)
		}
	}
	line := fmt.Sprintf("  %s  %-7s  %-6s  %-60s  %s", ts, cmd, status, truncateLogString(formatLogDetail(e), 60), formatLogDuration(e.Duration))
	return strings.TrimRight(line, " ")
}

func formatLogTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) >= 16 {
			return ts[:16]
		}
		return ts
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatLogDetail(e oplog.Entry) string {
	var detail string
	switch e.Command {
	case "sync":
		detail = fmt.Sprintf("+%d -%d", logArgInt(e.Args, "added"), logArgInt(e.Args, "removed"))
		if s := logArgInt(e.Args, "skipped"); s > 0 {
			detail += fmt.Sprintf(" skipped=%d", s)
		}
	case "set":
		detail = fmt.Sprintf("%s = %v", logArgString(e.Args, "video"), e.Args["value"])
	case "mark", "unmark":
		if videos, ok := e.Args["videos"].([]any); ok {
			parts := make([]string, 0, len(videos))
			for _, v := range videos {
				parts = append(parts, fmt.Sprint(v))
			}
			detail = strings.Join(parts, ", ")
		}
	case "name":
		detail = logArgString(e.Args, "name")
	}
	if root := e.Root; root != "" {
		detail = strings.TrimSpace(detail + " @ " + root)
	}
	if e.Message != "" {
		detail = strings.TrimSpace(detail + " (" + e.Message + ")")
	}
	return detail
}

func logArgString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// logArgInt reads a numeric arg; JSON numbers decode as float64.
func logArgInt(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func formatLogDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

func truncateLogString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func printLogHelp() {
	fmt.Fprintln(ui.Out, `Usage: mirava log [options]

Show recent sync, set, mark, unmark and name operations.

Options:
  -n, --tail <N>    Show the last N entries (default: 20)
  --cmd <name>      Only entries for this command
  --since <time>    Only entries after 30m, 2h, 2d, 1w, 2006-01-02 or RFC3339
  --here            Only entries for the course in the current directory
  --clear           Clear the operation log
  --help, -h        Show this help`)
}
