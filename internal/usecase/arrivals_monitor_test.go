package usecase

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/pkg/logger"
	"baggage-claim-service/pkg/metrics"
)

const (
	detroit      = "Detroit                712    3"
	kalamazoo    = "Kalamazoo              712    3"
	newYork      = "New York-Kennedy       400    1"
	sanFrancisco = "San Francisco          511    2"
	claimMonitor = "BaggageClaimMonitor"
	securityExit = "SecurityExit"
)

// block renders one expected arrivals screen
func block(name string, lines ...string) string {
	var b strings.Builder
	b.WriteString("Arrivals information from " + name + "\n")
	for _, l := range lines {
		b.WriteString(l + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func newTestMonitor(t *testing.T, name string) (*ArrivalsMonitor, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	m, err := NewArrivalsMonitor(name, &out, WithLogger(logger.NewNopLogger()))
	require.NoError(t, err)
	return m, &out
}

func TestNewArrivalsMonitor_RequiresName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		m, err := NewArrivalsMonitor(name, &bytes.Buffer{})
		assert.Nil(t, m)
		assert.True(t, errors.Is(err, ErrMonitorNameRequired))
	}
}

func TestArrivalsMonitor_Walkthrough(t *testing.T) {
	h := newTestHandler()
	claim, claimOut := newTestMonitor(t, claimMonitor)
	exit, exitOut := newTestMonitor(t, securityExit)

	require.NoError(t, h.Update(entity.NewBaggageInfo(712, "Detroit", 3)))
	require.NoError(t, claim.Subscribe(h))
	require.NoError(t, h.Update(entity.NewBaggageInfo(712, "Kalamazoo", 3)))
	require.NoError(t, h.Update(entity.NewBaggageInfo(400, "New York-Kennedy", 1)))
	require.NoError(t, h.Update(entity.NewBaggageInfo(712, "Detroit", 3)))
	require.NoError(t, exit.Subscribe(h))
	require.NoError(t, h.Update(entity.NewBaggageInfo(511, "San Francisco", 2)))
	require.NoError(t, h.UpdateFlight(712))
	require.NoError(t, exit.Unsubscribe())
	require.NoError(t, h.UpdateFlight(400))
	h.LastBaggageClaimed()

	wantClaim := block(claimMonitor, detroit) +
		block(claimMonitor, detroit, kalamazoo) +
		block(claimMonitor, detroit, kalamazoo, newYork) +
		block(claimMonitor, detroit, kalamazoo, newYork, sanFrancisco) +
		block(claimMonitor, newYork, sanFrancisco) +
		block(claimMonitor, sanFrancisco)
	assert.Equal(t, wantClaim, claimOut.String())

	wantExit := block(securityExit, detroit) +
		block(securityExit, detroit, kalamazoo) +
		block(securityExit, detroit, kalamazoo, newYork) +
		block(securityExit, detroit, kalamazoo, newYork, sanFrancisco) +
		block(securityExit, newYork, sanFrancisco)
	assert.Equal(t, wantExit, exitOut.String())

	assert.Empty(t, claim.Lines())
	assert.Empty(t, exit.Lines())
	assert.Zero(t, h.ObserverCount())
	assert.Equal(t, []entity.BaggageInfo{entity.NewBaggageInfo(511, "San Francisco", 2)}, h.Flights())
}

func TestArrivalsMonitor_LinesSortedByOrigin(t *testing.T) {
	m, _ := newTestMonitor(t, claimMonitor)

	require.NoError(t, m.OnNext(entity.NewBaggageInfo(511, "San Francisco", 2)))
	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Kalamazoo", 3)))
	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Detroit", 3)))

	assert.Equal(t, []string{detroit, kalamazoo, sanFrancisco}, m.Lines())
}

func TestArrivalsMonitor_NoRenderWithoutChange(t *testing.T) {
	m, out := newTestMonitor(t, claimMonitor)

	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Detroit", 3)))
	out.Reset()

	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Detroit", 3)))
	require.NoError(t, m.OnNext(entity.NewClearedBaggageInfo(400)))

	assert.Empty(t, out.String())
}

func TestArrivalsMonitor_RemovalDropsEveryLineOfFlight(t *testing.T) {
	m, out := newTestMonitor(t, claimMonitor)

	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Detroit", 3)))
	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Kalamazoo", 3)))
	require.NoError(t, m.OnNext(entity.NewBaggageInfo(7120, "Detroit", 3)))
	out.Reset()

	require.NoError(t, m.OnNext(entity.NewClearedBaggageInfo(712)))

	assert.Equal(t, []string{"Detroit               7120    3"}, m.Lines())
	assert.Equal(t, block(claimMonitor, "Detroit               7120    3"), out.String())
}

func TestArrivalsMonitor_LongOriginStillRemovedByFlight(t *testing.T) {
	m, _ := newTestMonitor(t, claimMonitor)

	require.NoError(t, m.OnNext(entity.NewBaggageInfo(88, "Dallas/Fort Worth International", 5)))
	require.Len(t, m.Lines(), 1)

	require.NoError(t, m.OnNext(entity.NewClearedBaggageInfo(88)))
	assert.Empty(t, m.Lines())
}

func TestArrivalsMonitor_UnsubscribeClearsView(t *testing.T) {
	h := newTestHandler()
	require.NoError(t, h.Update(entity.NewBaggageInfo(712, "Detroit", 3)))

	m, out := newTestMonitor(t, claimMonitor)
	require.NoError(t, m.Subscribe(h))
	require.NoError(t, m.Unsubscribe())

	assert.Empty(t, m.Lines())
	assert.Zero(t, h.ObserverCount())
	assert.Len(t, h.Flights(), 1)

	out.Reset()
	require.NoError(t, h.Update(entity.NewBaggageInfo(400, "New York-Kennedy", 1)))
	assert.Empty(t, out.String())

	// a render after clearing starts from an empty view
	require.NoError(t, m.OnNext(entity.NewBaggageInfo(511, "San Francisco", 2)))
	assert.Equal(t, block(claimMonitor, sanFrancisco), out.String())
}

func TestArrivalsMonitor_UnsubscribeWithoutSubscribe(t *testing.T) {
	m, _ := newTestMonitor(t, claimMonitor)

	err := m.Unsubscribe()
	assert.True(t, errors.Is(err, ErrNotSubscribed))
}

func TestArrivalsMonitor_OnCompletedClearsView(t *testing.T) {
	h := newTestHandler()
	m, out := newTestMonitor(t, claimMonitor)
	require.NoError(t, m.Subscribe(h))
	require.NoError(t, h.Update(entity.NewBaggageInfo(712, "Detroit", 3)))

	h.LastBaggageClaimed()
	assert.Empty(t, m.Lines())

	// forcibly detached; Unsubscribe has nothing left to release
	assert.True(t, errors.Is(m.Unsubscribe(), ErrNotSubscribed))

	// re-subscribing resumes from the handler's current state
	out.Reset()
	require.NoError(t, m.Subscribe(h))
	assert.Equal(t, block(claimMonitor, detroit), out.String())
}

// failingWriter rejects every write
type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestArrivalsMonitor_RenderErrorPropagates(t *testing.T) {
	errSink := errors.New("sink closed")
	m, err := NewArrivalsMonitor(claimMonitor, failingWriter{err: errSink})
	require.NoError(t, err)

	h := newTestHandler()
	require.NoError(t, m.Subscribe(h))

	err = h.Update(entity.NewBaggageInfo(712, "Detroit", 3))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSink))

	// the view was still updated before the failed render
	assert.Equal(t, []string{detroit}, m.Lines())
}

func TestArrivalsMonitor_CountsRenders(t *testing.T) {
	reg := prometheus.NewRegistry()
	mtr := metrics.NewMetrics("baggage", reg)

	m, err := NewArrivalsMonitor(claimMonitor, &bytes.Buffer{}, WithMetrics(mtr))
	require.NoError(t, err)

	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Detroit", 3)))
	require.NoError(t, m.OnNext(entity.NewBaggageInfo(712, "Detroit", 3)))
	require.NoError(t, m.OnNext(entity.NewClearedBaggageInfo(712)))

	assert.Equal(t, 2.0, testutil.ToFloat64(mtr.MonitorRenders.WithLabelValues(claimMonitor)))
}
