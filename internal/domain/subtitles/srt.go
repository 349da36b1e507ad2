package subtitles

import (
	"fmt"
	"strings"
	"time"

	"ytscribe/internal/types"
)

// RenderSRT serializes a transcript to SubRip format: 1-based sequence
// number, "HH:MM:SS,mmm --> HH:MM:SS,mmm" timecodes, text, blank separator.
// Segments with no text after trimming are skipped so players don't render
// empty cues.
func RenderSRT(tr types.Transcript) string {
	var b strings.Builder
	seq := 1
	for _, s := range tr.Segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", seq, srtTime(dur(s.Start)), srtTime(dur(s.End)), text)
		seq++
	}
	return b.String()
}

func srtTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	// Round first: float64 seconds often land a hair under the millisecond
	// boundary and plain truncation would print 1.2s as 00:00:01,199.
	d = d.Round(time.Millisecond)
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)
	d -= time.Duration(s) * time.Second
	ms := int(d / time.Millisecond)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }
