package service

import (
	"context"
	"sync"

	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/cache"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/domain"
	"github.com/Dhairya-unfiltered/Swift-Shops-Final/internal/events"
)

type mockCache struct {
	m        sync.RWMutex
	machines map[string]*domain.Machine
	getErr   error
}

func newMockCache() *mockCache {
	return &mockCache{machines: make(map[string]*domain.Machine)}
}

func (m *mockCache) Get(context.Context, string) (*domain.Machine, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return nil, cache.ErrCacheMiss
}

func (m *mockCache) Set(_ context.Context, machineID string, machine *domain.Machine) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.machines[machineID] = machine
	return nil
}

func (m *mockCache) Delete(_ context.Context, machineID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.machines, machineID)
	return nil
}

type hitCache struct {
	machine *domain.Machine
}

func (c *hitCache) Get(context.Context, string) (*domain.Machine, error) {
	return c.machine, nil
}

func (c *hitCache) Set(context.Context, string, *domain.Machine) error { return nil }

func (c *hitCache) Delete(context.Context, string) error { return nil }

type mockPublisher struct {
	m      sync.Mutex
	events []events.OrderEvent
}

func (p *mockPublisher) Publish(_ context.Context, event events.OrderEvent) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *mockPublisher) published() []events.OrderEvent {
	p.m.Lock()
	defer p.m.Unlock()
	out := make([]events.OrderEvent, len(p.events))
	copy(out, p.events)
	return out
}

var _ cache.MachineCache = (*mockCache)(nil)
var _ cache.MachineCache = (*hitCache)(nil)
var _ events.Publisher = (*mockPublisher)(nil)
