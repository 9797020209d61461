package usecase

// MonitorRouter resolves the monitors named in a feed
type MonitorRouter interface {
	// Register registers a monitor under its name
	Register(monitor *ArrivalsMonitor) error

	// Get returns the monitor registered under name
	Get(name string) (*ArrivalsMonitor, error)
}
