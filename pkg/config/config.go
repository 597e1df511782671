package config

type Config interface {
	// DivisionPrecision is the number of fractional digits kept by a quotient.
	DivisionPrecision() int
	AllowNonRootAccess() bool
	// PublishEvents controls whether state changes are streamed to /events.
	PublishEvents() bool

	SetDivisionPrecision(int)
	SetAllowNonRootAccess(bool)
	SetPublishEvents(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
