package summary_test

import (
	"sync"
	"testing"
	"time"

	"github.com/briefing/backend/internal/application/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPrintFacility records calls to Print
type MockPrintFacility struct {
	mock.Mock
}

func (m *MockPrintFacility) Print() {
	m.Called()
}

func TestPrintTrigger_Fire_CallsFacilityOnceWithoutBlocking(t *testing.T) {
	release := make(chan struct{})
	called := make(chan struct{}, 10)

	facility := new(MockPrintFacility)
	facility.On("Print").Run(func(mock.Arguments) {
		called <- struct{}{}
		<-release // the host dialog stays open
	}).Return()

	trigger := summary.NewPrintTrigger(facility, nil)

	returned := make(chan bool)
	go func() { returned <- trigger.Fire() }()

	select {
	case ok := <-returned:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Fire blocked on the print facility")
	}

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("print facility was not invoked")
	}
	close(release)

	// no retry or duplicate call follows
	assert.Never(t, func() bool { return len(called) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
	facility.AssertNumberOfCalls(t, "Print", 1)
	assert.Equal(t, int64(1), trigger.Fired())
}

func TestPrintTrigger_Fire_OneCallPerClick(t *testing.T) {
	var wg sync.WaitGroup
	facility := new(MockPrintFacility)
	facility.On("Print").Run(func(mock.Arguments) { wg.Done() }).Return()

	trigger := summary.NewPrintTrigger(facility, nil)
	clicks := 3
	wg.Add(clicks)
	for range clicks {
		require.True(t, trigger.Fire())
	}
	wg.Wait()

	facility.AssertNumberOfCalls(t, "Print", clicks)
	assert.Equal(t, int64(clicks), trigger.Fired())
}

func TestPrintTrigger_Fire_FacilityPanicIsContained(t *testing.T) {
	done := make(chan struct{})
	trigger := summary.NewPrintTrigger(summary.PrintFacilityFunc(func() {
		defer close(done)
		panic("printer on fire")
	}), nil)

	assert.True(t, trigger.Fire())
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("print facility was not invoked")
	}
}

func TestPrintTrigger_Unavailable(t *testing.T) {
	trigger := summary.NewPrintTrigger(nil, nil)

	assert.False(t, trigger.Available())
	assert.False(t, trigger.Fire())
	assert.Zero(t, trigger.Fired())

	var nilTrigger *summary.PrintTrigger
	assert.False(t, nilTrigger.Available())
}
