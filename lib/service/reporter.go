package service

// Reporter receives operator-facing progress messages.
type Reporter interface {
	// Section starts a new block of output, e.g. one per operation.
	Section(title string)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Section(string)       {}
func (NopReporter) Infof(string, ...any) {}
func (NopReporter) Warnf(string, ...any) {}
