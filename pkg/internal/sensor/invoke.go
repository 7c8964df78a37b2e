package sensor

import "github.com/joeydtaylor/framefit/pkg/internal/types"

// Invoke* copy the callback slice under the lock and run the callbacks outside it,
// so a callback may register further callbacks.

func (s *Sensor) InvokeOnStart(c types.ComponentMetadata) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata){}, s.OnStart...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c)
	}
}

func (s *Sensor) InvokeOnComplete(c types.ComponentMetadata) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata){}, s.OnComplete...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c)
	}
}

func (s *Sensor) InvokeOnFrameDecoded(c types.ComponentMetadata, seq uint16) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, uint16){}, s.OnFrameDecoded...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c, seq)
	}
}

func (s *Sensor) InvokeOnFrameDropped(c types.ComponentMetadata, pendingChars int) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, int){}, s.OnFrameDropped...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c, pendingChars)
	}
}

func (s *Sensor) InvokeOnSampleDecoded(c types.ComponentMetadata, rec types.SampleRecord) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, types.SampleRecord){}, s.OnSampleDecoded...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c, rec)
	}
}

func (s *Sensor) InvokeOnFitComplete(c types.ComponentMetadata, channel int, res types.FitResult) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, int, types.FitResult){}, s.OnFitComplete...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c, channel, res)
	}
}

func (s *Sensor) InvokeOnFitFailed(c types.ComponentMetadata, channel int) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, int){}, s.OnFitFailed...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c, channel)
	}
}

func (s *Sensor) InvokeOnProgress(c types.ComponentMetadata, fraction float64) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, float64){}, s.OnProgress...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c, fraction)
	}
}

func (s *Sensor) InvokeOnError(c types.ComponentMetadata, err error) {
	s.callbackLock.Lock()
	callbacks := append([]func(types.ComponentMetadata, error){}, s.OnError...)
	s.callbackLock.Unlock()
	for _, callback := range callbacks {
		callback(c, err)
	}
}
