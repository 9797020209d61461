package router

import (
	"errors"
	"fmt"

	"baggage-claim-service/internal/usecase"
	"baggage-claim-service/pkg/logger"
)

var (
	// ErrMonitorNotFound is returned when no monitor is registered under a name
	ErrMonitorNotFound = errors.New("monitor not found")
	// ErrDuplicateMonitor is returned when a name is registered twice
	ErrDuplicateMonitor = errors.New("monitor already registered")
)

var _ usecase.MonitorRouter = (*MonitorRouter)(nil)

// MonitorRouter routes feed commands to monitors by name
type MonitorRouter struct {
	monitors map[string]*usecase.ArrivalsMonitor
	names    []string
	logger   logger.Logger
}

// NewMonitorRouter creates a new monitor router
func NewMonitorRouter(logger logger.Logger) *MonitorRouter {
	return &MonitorRouter{
		monitors: make(map[string]*usecase.ArrivalsMonitor),
		logger:   logger,
	}
}

// Register registers a monitor under its name
func (r *MonitorRouter) Register(monitor *usecase.ArrivalsMonitor) error {
	name := monitor.Name()
	if _, exists := r.monitors[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMonitor, name)
	}
	r.monitors[name] = monitor
	r.names = append(r.names, name)
	r.logger.Info("Registered monitor", "monitor", name)
	return nil
}

// Get returns the monitor registered under name
func (r *MonitorRouter) Get(name string) (*usecase.ArrivalsMonitor, error) {
	monitor, ok := r.monitors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMonitorNotFound, name)
	}
	return monitor, nil
}

// Names returns the registered names in registration order
func (r *MonitorRouter) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
