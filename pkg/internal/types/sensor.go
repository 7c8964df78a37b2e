package types

// Sensor collects callbacks fired by the decoder, fitter and analyzer. Callbacks run
// synchronously on the reporting goroutine and must not block; analyzer callbacks
// may arrive from several workers at once.
type Sensor interface {
	GetComponentMetadata() ComponentMetadata
	ConnectLogger(...Logger)
	NotifyLoggers(level LogLevel, msg string, keysAndValues ...interface{})

	RegisterOnStart(...func(ComponentMetadata))
	RegisterOnComplete(...func(ComponentMetadata))
	RegisterOnFrameDecoded(...func(ComponentMetadata, uint16))
	RegisterOnFrameDropped(...func(ComponentMetadata, int))
	RegisterOnSampleDecoded(...func(ComponentMetadata, SampleRecord))
	RegisterOnFitComplete(...func(ComponentMetadata, int, FitResult))
	RegisterOnFitFailed(...func(ComponentMetadata, int))
	RegisterOnProgress(...func(ComponentMetadata, float64))
	RegisterOnError(...func(ComponentMetadata, error))

	InvokeOnStart(ComponentMetadata)
	InvokeOnComplete(ComponentMetadata)
	InvokeOnFrameDecoded(cm ComponentMetadata, seq uint16)
	InvokeOnFrameDropped(cm ComponentMetadata, pendingChars int)
	InvokeOnSampleDecoded(cm ComponentMetadata, rec SampleRecord)
	InvokeOnFitComplete(cm ComponentMetadata, channel int, res FitResult)
	InvokeOnFitFailed(cm ComponentMetadata, channel int)
	InvokeOnProgress(cm ComponentMetadata, fraction float64)
	InvokeOnError(cm ComponentMetadata, err error)
}
