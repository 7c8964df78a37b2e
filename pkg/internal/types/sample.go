package types

import "fmt"

// Wire format constants for the detector front-end hex stream.
const (
	// FrameMarker opens every frame; matched case-insensitively.
	FrameMarker = "E225"
	// FrameBytes is the decoded length of one frame.
	FrameBytes = 2064
	// FrameHexLen is the number of hex characters in one frame.
	FrameHexLen = FrameBytes * 2
	// SamplesPerFrame is the number of sample records carried by one frame.
	SamplesPerFrame = 15
	// ChannelsPerGroup is the number of channels in one sensor layer.
	ChannelsPerGroup = 16
	// GroupCount is the number of sensor layers per sample.
	GroupCount = 4
	// VoltsPerCount converts a 14-bit ADC count to millivolts.
	VoltsPerCount = (5.0 / 16383.0) * 1000.0
)

// ChannelGroup selects one of the four sensor layers.
type ChannelGroup int

const (
	GroupA ChannelGroup = iota
	GroupB
	GroupC
	GroupD
)

// String returns the single-letter layer name.
func (g ChannelGroup) String() string {
	switch g {
	case GroupA:
		return "A"
	case GroupB:
		return "B"
	case GroupC:
		return "C"
	case GroupD:
		return "D"
	default:
		return "?"
	}
}

// Valid reports whether g names one of the four layers.
func (g ChannelGroup) Valid() bool {
	return g >= GroupA && g <= GroupD
}

// MarshalText encodes the group as its letter.
func (g ChannelGroup) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid channel group %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText accepts the letters ParseChannelGroup does.
func (g *ChannelGroup) UnmarshalText(b []byte) error {
	v, ok := ParseChannelGroup(string(b))
	if !ok {
		return fmt.Errorf("unknown channel group %q", b)
	}
	*g = v
	return nil
}

// ParseChannelGroup accepts "A".."D" in either case.
func ParseChannelGroup(s string) (ChannelGroup, bool) {
	switch s {
	case "A", "a":
		return GroupA, true
	case "B", "b":
		return GroupB, true
	case "C", "c":
		return GroupC, true
	case "D", "d":
		return GroupD, true
	}
	return 0, false
}

// SampleRecord is one decoded measurement set: 4 layers x 16 channels of raw ADC
// counts and the matching millivolt values. Records are never mutated after decode.
type SampleRecord struct {
	PacketSequence uint16                                `json:"packetSequence"`
	SampleIndex    int                                   `json:"sampleIndex"`
	Raw            [GroupCount][ChannelsPerGroup]uint16  `json:"raw"`
	Voltage        [GroupCount][ChannelsPerGroup]float64 `json:"voltage"`
}

// Group returns the raw counts of one layer.
func (s SampleRecord) Group(g ChannelGroup) [ChannelsPerGroup]uint16 {
	return s.Raw[g]
}

// Voltages returns the millivolt values of one layer.
func (s SampleRecord) Voltages(g ChannelGroup) [ChannelsPerGroup]float64 {
	return s.Voltage[g]
}
