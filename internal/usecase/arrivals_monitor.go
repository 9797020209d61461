package usecase

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"baggage-claim-service/internal/domain/entity"
	"baggage-claim-service/pkg/logger"
	"baggage-claim-service/pkg/metrics"
	"baggage-claim-service/pkg/utils"
)

var (
	// ErrMonitorNameRequired is returned when a monitor is created without a name
	ErrMonitorNameRequired = errors.New("the monitor must be assigned a name")
	// ErrNotSubscribed is returned by Unsubscribe on a monitor that holds no subscription
	ErrNotSubscribed = errors.New("monitor is not subscribed")
)

// ArrivalsMonitor displays arriving flights and the carousels where their
// baggage can be claimed. It re-renders its whole view to out whenever the
// set of displayed lines changes.
//
// Lines are deduplicated on their formatted text, so two entries for the same
// flight number with different origins are both displayed.
type ArrivalsMonitor struct {
	name    string
	out     io.Writer
	logger  logger.Logger
	metrics *metrics.Metrics

	mu           sync.Mutex
	flightInfos  map[string]int // formatted line -> flight number
	cancellation *Unsubscriber
}

// MonitorOption configures an ArrivalsMonitor
type MonitorOption func(*ArrivalsMonitor)

// WithLogger sets the monitor's logger
func WithLogger(log logger.Logger) MonitorOption {
	return func(m *ArrivalsMonitor) {
		m.logger = log
	}
}

// WithMetrics sets the collectors the monitor reports renders to
func WithMetrics(metrics *metrics.Metrics) MonitorOption {
	return func(m *ArrivalsMonitor) {
		m.metrics = metrics
	}
}

// NewArrivalsMonitor creates a monitor that renders to out (stdout when nil)
func NewArrivalsMonitor(name string, out io.Writer, opts ...MonitorOption) (*ArrivalsMonitor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMonitorNameRequired
	}
	if out == nil {
		out = os.Stdout
	}

	m := &ArrivalsMonitor{
		name:        name,
		out:         out,
		logger:      logger.NewNopLogger(),
		flightInfos: make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With("monitor", name)
	return m, nil
}

// Name returns the display name of the monitor
func (m *ArrivalsMonitor) Name() string {
	return m.name
}

// Subscribe attaches the monitor to a provider and keeps the handle
func (m *ArrivalsMonitor) Subscribe(provider BaggageObservable) error {
	// provider replays current flights through OnNext, so mu must not be held here
	cancellation, err := provider.Subscribe(m)

	m.mu.Lock()
	m.cancellation = cancellation
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to replay flights to %s: %w", m.name, err)
	}
	m.logger.Info("Monitor subscribed")
	return nil
}

// Unsubscribe detaches the monitor from its provider and clears the view
func (m *ArrivalsMonitor) Unsubscribe() error {
	m.mu.Lock()
	cancellation := m.cancellation
	m.cancellation = nil
	if cancellation == nil {
		m.mu.Unlock()
		return ErrNotSubscribed
	}
	m.clear()
	m.mu.Unlock()

	cancellation.Unsubscribe()
	m.logger.Info("Monitor unsubscribed")
	return nil
}

// OnCompleted clears the view; the provider has already detached the monitor
func (m *ArrivalsMonitor) OnCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancellation = nil
	m.clear()
	m.logger.Debug("Monitor completed")
}

// OnNext reconciles the view with one update and renders it if it changed
func (m *ArrivalsMonitor) OnNext(info entity.BaggageInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	updated := false

	if !info.IsBaggageClaimAssigned() {
		// Flight has unloaded its baggage; remove every line for it.
		for line, flightNo := range m.flightInfos {
			if flightNo == info.FlightNumber {
				delete(m.flightInfos, line)
				updated = true
			}
		}
	} else {
		line := utils.FormatFlightLine(info.From, info.FlightNumber, info.Carousel)
		if _, ok := m.flightInfos[line]; !ok {
			m.flightInfos[line] = info.FlightNumber
			updated = true
		}
	}

	if !updated {
		return nil
	}
	return m.render()
}

// Lines returns the current view in display order
func (m *ArrivalsMonitor) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLines()
}

func (m *ArrivalsMonitor) render() error {
	var b strings.Builder
	fmt.Fprintf(&b, "Arrivals information from %s\n", m.name)
	lines := m.sortedLines()
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if m.metrics != nil {
		m.metrics.MonitorRenders.WithLabelValues(m.name).Inc()
	}
	m.logger.Debug("Rendering arrivals", "lines", len(lines))

	if _, err := io.WriteString(m.out, b.String()); err != nil {
		return fmt.Errorf("failed to render %s: %w", m.name, err)
	}
	return nil
}

func (m *ArrivalsMonitor) sortedLines() []string {
	lines := make([]string, 0, len(m.flightInfos))
	for line := range m.flightInfos {
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}

func (m *ArrivalsMonitor) clear() {
	m.flightInfos = make(map[string]int)
}
