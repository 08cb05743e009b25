// Package probe reports the playback length of media files.
package probe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds a single ffprobe invocation.
const DefaultTimeout = 10 * time.Second

// ErrNoDuration is returned when the probe ran but reported no usable length.
var ErrNoDuration = errors.New("no duration found")

// Prober returns the duration of a media file in whole seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (int64, error)
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, path string) (int64, error)

func (f ProberFunc) Duration(ctx context.Context, path string) (int64, error) {
	return f(ctx, path)
}

// FFprobe shells out to ffprobe.
type FFprobe struct {
	Bin     string
	Timeout time.Duration

	// run executes the command and returns its stdout; swapped in tests.
	run func(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// NewFFprobe returns an FFprobe using bin (or "ffprobe" from PATH) and timeout
// (or DefaultTimeout).
func NewFFprobe(bin string, timeout time.Duration) *FFprobe {
	bin = strings.TrimSpace(bin)
	if bin == "" {
		bin = "ffprobe"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FFprobe{Bin: bin, Timeout: timeout, run: runCommand}
}

// Duration runs
//
//	ffprobe -v error -show_entries format=duration -of default=noprint_wrappers=1:nokey=1 <file>
//
// and truncates the reported seconds.
func (p *FFprobe) Duration(ctx context.Context, path string) (int64, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	run := p.run
	if run == nil {
		run = runCommand
	}
	bin := p.Bin
	if bin == "" {
		bin = "ffprobe"
	}

	out, err := run(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseSeconds(out)
}

func parseSeconds(out []byte) (int64, error) {
	val := strings.TrimSpace(string(out))
	// Some containers print one line per stream; the first is the format.
	if i := strings.IndexByte(val, '\n'); i >= 0 {
		val = strings.TrimSpace(val[:i])
	}
	if val == "" || val == "N/A" {
		return 0, ErrNoDuration
	}
	secs, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output %q: %w", val, err)
	}
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < 0 {
		return 0, fmt.Errorf("unexpected ffprobe output %q", val)
	}
	return int64(secs), nil
}

func runCommand(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.Output()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, err
	}
	return out, nil
}
