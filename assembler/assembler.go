// Package assembler pairs each FrameMetadata with its matching per-stream
// VideoFrames and delivers a DecodedFrame (§4.F).
//
// Grounded on decoder.cpp's main loop: genericInput.wait()/front(), the
// per-stream front()/pop() sequence, and the empty-queue retry shape,
// translated from the audio/video split onto the metadata/video streams
// spec.md §4.F describes. Close mirrors Service::join by closing and
// draining every input queue in turn; there are no per-stream goroutines
// to join, since RunOnce polls all expected streams from a single caller
// goroutine.
package assembler

import (
	"context"
	"time"

	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/metadata"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/packet"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/queue"
	"github.com/5G-MAG/rt-v3c-decoder-plugin-sub000/videoframe"
)

// retryInterval bounds the non-destructive poll of §4.F step 3 ("sleep
// briefly (<=100us) and retry").
const retryInterval = 100 * time.Microsecond

// DecodedFrame is the unit produced by Assembler and consumed by the
// synthesizer facade (§3).
type DecodedFrame struct {
	Metadata packet.Packet[metadata.FrameMetadata]
	Streams  [videoframe.NumStreamKinds]packet.Packet[videoframe.VideoFrame]

	ContentID int32
	SegmentID int32
}

// Release releases every packet this DecodedFrame holds.
func (f *DecodedFrame) Release() {
	f.Metadata.Release()
	for i := range f.Streams {
		f.Streams[i].Release()
	}
}

// TimestampMode selects the timestamp policy of §4.F.
type TimestampMode int

const (
	// Offline interpolates: ts(k+1) = ts(k) + chunk_duration/frame_count.
	Offline TimestampMode = iota
	// Streaming starts at zero, advances by segmentDuration on each segment
	// change, and gives every frame of a segment that segment's PTS. No wall
	// clock is read.
	Streaming
)

// V3CFlags reports which atlas streams are present for the active atlas
// (§4.F step 2: "decide which streams are expected").
type V3CFlags struct {
	Occupancy, Geometry, Transparency bool
}

// Assembler owns one metadata input and up to four video-stream inputs
// keyed by videoframe.StreamKind (§4.F "State").
type Assembler struct {
	mode TimestampMode

	MetadataIn *queue.Input[metadata.FrameMetadata]
	StreamIn   [videoframe.NumStreamKinds]*queue.Input[videoframe.VideoFrame]

	Out     *queue.Output[DecodedFrame]
	factory *packet.Factory[DecodedFrame]

	lastTimestamp    time.Duration
	segmentStartWall time.Duration
	currentSegmentID uint32
	haveSegment      bool
}

// New returns an Assembler in the given timestamp mode, with its input
// queues already open. outstanding bounds how many DecodedFrames may be
// in flight downstream at once (§4.A).
func New(mode TimestampMode, outstanding int) *Assembler {
	a := &Assembler{
		mode:       mode,
		MetadataIn: queue.NewInput[metadata.FrameMetadata](),
		Out:        queue.NewOutput[DecodedFrame](),
		factory:    packet.NewFactory[DecodedFrame](outstanding),
	}
	a.MetadataIn.Open()
	for i := range a.StreamIn {
		a.StreamIn[i] = queue.NewInput[videoframe.VideoFrame]()
		a.StreamIn[i].Open()
	}
	return a
}

// expectedStreams returns which StreamKind slots must be present for the
// given flags, per §4.F step 2: texture is always required, the rest follow flags.
func expectedStreams(flags V3CFlags) [videoframe.NumStreamKinds]bool {
	var expected [videoframe.NumStreamKinds]bool
	expected[videoframe.Texture] = true
	expected[videoframe.Occupancy] = flags.Occupancy
	expected[videoframe.Geometry] = flags.Geometry
	expected[videoframe.Transparency] = flags.Transparency
	return expected
}

// RunOnce executes one iteration of §4.F's algorithm: wait for metadata,
// determine expected streams via flags, poll non-destructively until all
// are available, then pop everything and push the assembled DecodedFrame.
// segmentID/segmentDuration drive the Streaming timestamp policy; both are
// ignored in Offline mode. Returns false once the metadata queue has been
// closed.
func (a *Assembler) RunOnce(ctx context.Context, flags V3CFlags, chunkDuration time.Duration, frameCount int, segmentID uint32, segmentDuration time.Duration) bool {
	if !a.MetadataIn.Wait() {
		return false
	}
	if _, ok := a.MetadataIn.Front(); !ok {
		return false
	}

	expected := expectedStreams(flags)
	for {
		allReady := true
		for i, want := range expected {
			if !want {
				continue
			}
			if _, ok := a.StreamIn[i].Front(); !ok {
				allReady = false
				break
			}
		}
		if allReady {
			break
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(retryInterval):
		}
	}

	metaPkt, _ := a.MetadataIn.Pop()

	framePkt, err := a.factory.Acquire(ctx)
	if err != nil {
		metaPkt.Release()
		return false
	}
	frame := framePkt.Content()
	frame.Metadata = metaPkt
	ts := a.nextTimestamp(chunkDuration, frameCount, segmentID, segmentDuration)
	for i, want := range expected {
		if !want {
			continue
		}
		streamPkt, _ := a.StreamIn[i].Pop()
		if content := streamPkt.Content(); content != nil {
			content.Timestamp = ts
		}
		frame.Streams[i] = streamPkt
	}

	a.Out.Push(framePkt)
	return true
}

// nextTimestamp applies the §4.F timestamp policy for the active mode.
// Streaming samples a new segment start once per distinct segmentID and
// advances it by segmentDuration on every subsequent segment; frames
// within a segment inherit that segment's PTS unchanged.
func (a *Assembler) nextTimestamp(chunkDuration time.Duration, frameCount int, segmentID uint32, segmentDuration time.Duration) time.Duration {
	switch a.mode {
	case Streaming:
		switch {
		case !a.haveSegment:
			a.haveSegment = true
			a.currentSegmentID = segmentID
		case segmentID != a.currentSegmentID:
			a.segmentStartWall += segmentDuration
			a.currentSegmentID = segmentID
		}
		a.lastTimestamp = a.segmentStartWall
		return a.segmentStartWall
	default: // Offline
		if frameCount <= 0 {
			return a.lastTimestamp
		}
		step := chunkDuration / time.Duration(frameCount)
		a.lastTimestamp += step
		return a.lastTimestamp
	}
}

// Close closes every input queue, releasing whatever is still pending
// (§4.F "remaining stream packets are released when their queues close").
func (a *Assembler) Close() {
	a.MetadataIn.Close()
	a.MetadataIn.Clear()
	for i := range a.StreamIn {
		a.StreamIn[i].Close()
		a.StreamIn[i].Clear()
	}
}
