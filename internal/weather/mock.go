package weather

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

var (
	mockTemperatures = []float64{18, 22, 25, 28, 15, 12, 30, 8, 35}
	mockDescriptions = []string{"sunny", "partly cloudy", "rainy", "cloudy", "clear"}
)

// Mock draws plausible conditions from fixed candidate sets. The same seed
// yields the same sequence.
type Mock struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock builds a Mock. Seed zero seeds from the clock.
func NewMock(seed uint64) *Mock {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Mock{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Current never fails.
func (m *Mock) Current(context.Context) (Conditions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Conditions{
		Temperature: mockTemperatures[m.rng.IntN(len(mockTemperatures))],
		FeelsLike:   mockTemperatures[m.rng.IntN(len(mockTemperatures))],
		Humidity:    40 + m.rng.IntN(41),
		Description: mockDescriptions[m.rng.IntN(len(mockDescriptions))],
		Main:        "Clear",
		WindSpeed:   float64(5 + m.rng.IntN(11)),
		City:        "Demo City",
		Country:     "XX",
		Source:      SourceMock,
	}, nil
}
