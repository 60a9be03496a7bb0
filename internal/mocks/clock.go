package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/brettbedarf/fakefs"
)

// MockClock implements fakefs.Clock for testing across packages
type MockClock struct {
	mock.Mock
}

// NewMockClock returns a clock that reports now until [MockClock.Set] is called.
func NewMockClock(now time.Time) *MockClock {
	m := &MockClock{}
	m.Set(now)
	return m
}

func (m *MockClock) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// Set replaces any previous expectation so every later Now call returns now.
// Not safe to call while another goroutine is reading the clock.
func (m *MockClock) Set(now time.Time) {
	m.ExpectedCalls = nil
	m.On("Now").Return(now)
}

var _ fakefs.Clock = (*MockClock)(nil)
