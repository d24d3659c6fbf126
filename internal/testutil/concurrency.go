package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// SleeperType is the node type served by MockSleeperModule.
const SleeperType = "Sleeper"

// MockSleeperModule is a shared, self-contained module for concurrency tests.
// Every build of a Sleeper vertex sleeps and records when it ran.
type MockSleeperModule struct {
	ExecutionTimes map[string]*ExecutionRecord
	mu             sync.Mutex
	sleepDuration  time.Duration
	completionChan chan<- string
}

// NewMockSleeperModule creates a new sleeper module for testing.
func NewMockSleeperModule(completionChan chan<- string, sleep time.Duration) *MockSleeperModule {
	return &MockSleeperModule{
		ExecutionTimes: make(map[string]*ExecutionRecord),
		sleepDuration:  sleep,
		completionChan: completionChan,
	}
}

// Register registers the Sleeper factory.
func (m *MockSleeperModule) Register(r *registry.Registry) {
	r.Register(SleeperType, func() vertex.Behavior {
		return vertex.Func{K: vertex.KindGeneric, Fn: m.build}
	})
}

func (m *MockSleeperModule) build(ctx context.Context, v *vertex.Vertex, _ map[string]any) (any, error) {
	startTime := time.Now()
	select {
	case <-time.After(m.sleepDuration):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	endTime := time.Now()

	m.mu.Lock()
	m.ExecutionTimes[v.ID()] = &ExecutionRecord{Start: startTime, End: endTime}
	m.mu.Unlock()

	if m.completionChan != nil {
		m.completionChan <- v.ID()
	}
	return v.ID(), nil
}

// Record returns the execution record of a vertex.
func (m *MockSleeperModule) Record(id string) (ExecutionRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.ExecutionTimes[id]
	if !ok {
		return ExecutionRecord{}, false
	}
	return *r, true
}
