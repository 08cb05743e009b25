package state

// WatchedSentinel marks a video with unknown duration as fully watched.
// The value is part of the on-disk format and must not change.
const WatchedSentinel int64 = 999999

// Video is one tracked video file.
type Video struct {
	Path        string `json:"path"`
	DurationSec int64  `json:"duration_sec"`
	WatchedSec  int64  `json:"watched_sec"`

	// Found is set during a scan when the file is seen on disk.
	Found bool `json:"-"`
}

// Complete reports whether the video has been watched to the end.
func (v Video) Complete() bool {
	if v.DurationSec > 0 {
		return v.WatchedSec >= v.DurationSec
	}
	return v.WatchedSec >= WatchedSentinel
}

// Percent returns the watched percentage, or -1 when the duration is unknown.
func (v Video) Percent() int {
	if v.DurationSec <= 0 {
		return -1
	}
	return int(100 * v.WatchedSec / v.DurationSec)
}

// Course holds the persisted state of one course: its name and the ordered
// list of videos. The order is insertion order and is also display order.
type Course struct {
	Name   string
	Videos []Video
}

// Len returns the number of tracked videos.
func (c *Course) Len() int {
	return len(c.Videos)
}

// Find returns the first video whose path equals path exactly.
// The pointer is only valid until the next append or prune.
func (c *Course) Find(path string) *Video {
	for i := range c.Videos {
		if c.Videos[i].Path == path {
			return &c.Videos[i]
		}
	}
	return nil
}

// At returns the video at 1-based position n.
func (c *Course) At(n int) (*Video, error) {
	if n < 1 || n > len(c.Videos) {
		return nil, &LookupError{Number: n, Count: len(c.Videos)}
	}
	return &c.Videos[n-1], nil
}

// ResetFound clears the Found flag on every video. Called at scan start.
func (c *Course) ResetFound() {
	for i := range c.Videos {
		c.Videos[i].Found = false
	}
}

// UpsertFromScan records a video seen on disk. An existing entry keeps its
// watched time and gets the fresh duration; an unknown path is appended with
// zero watched time. Reports whether a new entry was added.
func (c *Course) UpsertFromScan(path string, durationSec int64) bool {
	if durationSec < 0 {
		durationSec = 0
	}
	if v := c.Find(path); v != nil {
		v.Found = true
		v.DurationSec = durationSec
		return false
	}
	c.Videos = append(c.Videos, Video{
		Path:        path,
		DurationSec: durationSec,
		WatchedSec:  0,
		Found:       true,
	})
	return true
}

// PruneAbsent drops every video not flagged Found, keeping the order of the
// rest, and returns the dropped entries.
func (c *Course) PruneAbsent() []Video {
	var removed []Video
	kept := c.Videos[:0]
	for _, v := range c.Videos {
		if v.Found {
			kept = append(kept, v)
			continue
		}
		removed = append(removed, v)
	}
	// Zero the tail so dropped entries don't linger in the backing array.
	for i := len(kept); i < len(c.Videos); i++ {
		c.Videos[i] = Video{}
	}
	c.Videos = kept
	return removed
}

// Totals returns the summed duration, summed watched time, and the overall
// percentage (-1 when the total duration is zero). Videos with unknown
// duration add nothing to either sum.
func (c *Course) Totals() (duration, watched int64, percent int) {
	for _, v := range c.Videos {
		if v.DurationSec <= 0 {
			continue
		}
		duration += v.DurationSec
		watched += min(max(v.WatchedSec, 0), v.DurationSec)
	}
	if duration <= 0 {
		return duration, watched, -1
	}
	return duration, watched, int(100 * watched / duration)
}
