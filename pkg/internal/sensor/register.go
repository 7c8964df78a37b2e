package sensor

import "github.com/joeydtaylor/framefit/pkg/internal/types"

func (s *Sensor) RegisterOnStart(callback ...func(types.ComponentMetadata)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnStart = append(s.OnStart, callback...)
}

func (s *Sensor) RegisterOnComplete(callback ...func(types.ComponentMetadata)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnComplete = append(s.OnComplete, callback...)
}

func (s *Sensor) RegisterOnFrameDecoded(callback ...func(types.ComponentMetadata, uint16)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnFrameDecoded = append(s.OnFrameDecoded, callback...)
}

func (s *Sensor) RegisterOnFrameDropped(callback ...func(types.ComponentMetadata, int)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnFrameDropped = append(s.OnFrameDropped, callback...)
}

func (s *Sensor) RegisterOnSampleDecoded(callback ...func(types.ComponentMetadata, types.SampleRecord)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnSampleDecoded = append(s.OnSampleDecoded, callback...)
}

func (s *Sensor) RegisterOnFitComplete(callback ...func(types.ComponentMetadata, int, types.FitResult)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnFitComplete = append(s.OnFitComplete, callback...)
}

func (s *Sensor) RegisterOnFitFailed(callback ...func(types.ComponentMetadata, int)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnFitFailed = append(s.OnFitFailed, callback...)
}

func (s *Sensor) RegisterOnProgress(callback ...func(types.ComponentMetadata, float64)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnProgress = append(s.OnProgress, callback...)
}

func (s *Sensor) RegisterOnError(callback ...func(types.ComponentMetadata, error)) {
	s.callbackLock.Lock()
	defer s.callbackLock.Unlock()
	s.OnError = append(s.OnError, callback...)
}
