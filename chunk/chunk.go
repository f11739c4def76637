// Package chunk implements the wire record handed off between the network
// ingestion layer and the upstream parser (§6.1). Only its shape is in
// scope here: parsing out of Miv/Vpcc payloads into FrameMetadata is the
// parser's job (out of scope, §1).
package chunk

import (
	"time"

	"github.com/google/uuid"
)

// TypeID identifies which subsystem a Chunk's payload belongs to (§6.1).
type TypeID uint8

const (
	TypeAudio TypeID = iota
	TypeHevc
	TypeVvc
	TypeMiv
	TypeVpcc
	TypeHaptic
)

func (t TypeID) String() string {
	switch t {
	case TypeAudio:
		return "audio"
	case TypeHevc:
		return "hevc"
	case TypeVvc:
		return "vvc"
	case TypeMiv:
		return "miv"
	case TypeVpcc:
		return "vpcc"
	case TypeHaptic:
		return "haptic"
	default:
		return "unknown"
	}
}

// CarriesVpccMetadata reports whether this chunk kind carries V-PCC/MIV
// patch metadata (§6.1: "Only Miv and Vpcc carry V-PCC/MIV metadata").
func (t TypeID) CarriesVpccMetadata() bool {
	return t == TypeMiv || t == TypeVpcc
}

// Header is the fixed-layout record at the start of every chunk (§6.1).
type Header struct {
	TypeID          TypeID
	MediaID         uint16
	SegmentID       uint32
	NumberOfFrames  uint32
	PTS             time.Duration
	Duration        time.Duration
	SegmentDuration time.Duration
	DataSize        uint32
	ErrorStreamer   uint16
}

// OK reports whether the header's ErrorStreamer field indicates success.
func (h Header) OK() bool { return h.ErrorStreamer == 0 }

// Chunk is a parsed header plus its opaque payload, stamped with a
// synthetic correlation id (DOMAIN STACK: google/uuid) on ingestion so
// logs/metrics across the assembler and synthesizer can be joined per
// chunk without guessing from SegmentID/PTS alone.
type Chunk struct {
	ID      uuid.UUID
	Header  Header
	Payload []byte
}

// New stamps a fresh correlation id onto header+payload.
func New(h Header, payload []byte) Chunk {
	return Chunk{ID: uuid.New(), Header: h, Payload: payload}
}
