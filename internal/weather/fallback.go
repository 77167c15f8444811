package weather

import (
	"context"
	"errors"
	"log/slog"
)

// Recorder counts which source answered.
type Recorder interface {
	WeatherServed(source string)
}

// Fallback asks the live provider first and degrades to the mock on any
// failure, so Current never returns an error.
type Fallback struct {
	live     Provider
	mock     Provider
	logger   *slog.Logger
	recorder Recorder
}

// NewFallback composes live and mock. live may be nil.
func NewFallback(live, mock Provider, logger *slog.Logger, recorder Recorder) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{live: live, mock: mock, logger: logger.With(slog.String("component", "weather")), recorder: recorder}
}

// Current returns live conditions or mock ones.
func (f *Fallback) Current(ctx context.Context) (Conditions, error) {
	if f.live != nil {
		conditions, err := f.live.Current(ctx)
		if err == nil {
			f.served(conditions.Source)
			return conditions, nil
		}
		if !errors.Is(err, ErrNotConfigured) {
			f.logger.Warn("weather api failed, using mock data", slog.Any("error", err))
		}
	}
	conditions, err := f.mock.Current(ctx)
	if err != nil {
		return Conditions{}, err
	}
	f.served(conditions.Source)
	return conditions, nil
}

func (f *Fallback) served(source string) {
	if f.recorder != nil {
		f.recorder.WeatherServed(source)
	}
}
