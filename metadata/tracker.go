package metadata

// Tracker observes a stream of FrameMetadata.FrameIndex values and counts
// GOP boundaries: a new GOP is detected whenever an incoming frame_index is
// less than the previously observed one (§3: "wrap-to-0 marks a new GOP").
//
// Not consumed by the builder or synthesizer — kept for callers that need
// GOP-aligned bookkeeping (e.g. trick-play) without threading it through
// the reconstruction path itself.
type Tracker struct {
	have bool
	prev int32
	gop  int
}

// Observe records fi and reports the current GOP count after the update.
func (t *Tracker) Observe(fi int32) int {
	if t.have && fi < t.prev {
		t.gop++
	}
	t.prev = fi
	t.have = true
	return t.gop
}

// GOPCount returns the number of GOP boundaries observed so far.
func (t *Tracker) GOPCount() int { return t.gop }
