package builder

import "github.com/joeydtaylor/framefit/pkg/internal/types"

type ComponentMetadata = types.ComponentMetadata

// Option configures a component of type T.
type Option[T any] = types.Option[T]

type ProgressFunc = types.ProgressFunc

type SampleRecord = types.SampleRecord

type ChannelGroup = types.ChannelGroup

type Model = types.Model

type FitConfig = types.FitConfig

type ThresholdConfig = types.ThresholdConfig

type FitResult = types.FitResult

type Histogram = types.Histogram

type ChannelAnalysis = types.ChannelAnalysis

const (
	GroupA = types.GroupA
	GroupB = types.GroupB
	GroupC = types.GroupC
	GroupD = types.GroupD

	ModelGaussian = types.ModelGaussian
	ModelHyperEMG = types.ModelHyperEMG

	FrameMarker      = types.FrameMarker
	FrameHexLen      = types.FrameHexLen
	SamplesPerFrame  = types.SamplesPerFrame
	ChannelsPerGroup = types.ChannelsPerGroup
	GroupCount       = types.GroupCount
)

// ParseChannelGroup accepts "A".."D" in either case.
func ParseChannelGroup(s string) (ChannelGroup, bool) {
	return types.ParseChannelGroup(s)
}

// ParseModel accepts "gaussian" or "hyperemg" and their common spellings.
func ParseModel(s string) (Model, bool) {
	return types.ParseModel(s)
}
