package log

// NewNullLogger returns a Logger that discards everything. Components
// constructed without a logger use it.
func NewNullLogger() Logger {
	return discard{}
}

type discard struct{}

func (discard) Infof(string, ...interface{})  {}
func (discard) Errorf(string, ...interface{}) {}
func (discard) Debugf(string, ...interface{}) {}
