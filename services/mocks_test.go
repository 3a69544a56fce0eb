package services

import (
	"catering-backend/availability"
	"catering-backend/models"
	"catering-backend/repository"
	"context"
	"sync"

	"github.com/stretchr/testify/mock"
)

type mockMirror struct {
	mock.Mock
}

func (m *mockMirror) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if b, ok := args.Get(0).(*models.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMirror) UpdateMirror(ctx context.Context, id string, mirror repository.Mirror) error {
	return m.Called(ctx, id, mirror).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context) (availability.Set, bool, error) {
	args := m.Called(ctx)
	set, _ := args.Get(0).(availability.Set)
	return set, args.Bool(1), args.Error(2)
}

func (m *mockCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, generation int64, set availability.Set) error {
	return m.Called(ctx, generation, set).Error(0)
}

// memoryCache follows the generation contract of the redis cache.
type memoryCache struct {
	mu  sync.Mutex
	gen int64
	set availability.Set
}

func (c *memoryCache) Get(context.Context) (availability.Set, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set, c.set != nil, nil
}

func (c *memoryCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memoryCache) Set(_ context.Context, generation int64, set availability.Set) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation == c.gen {
		c.set = set
	}
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.set = nil
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockStatusNotifier struct {
	mock.Mock
}

func (m *mockStatusNotifier) BookingStatusChanged(ctx context.Context, b models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(to, from, body string) (string, error) {
	args := m.Called(to, from, body)
	return args.String(0), args.Error(1)
}
