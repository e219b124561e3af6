package log

import (
	"fmt"
	"io"
	"sync"
)

// Level gates which messages a Logger writes.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

type logger struct {
	name  string
	level Level
	out   io.Writer
	mu    sync.Mutex
}

// NewNamed returns a Logger that prefixes every line with name and
// drops messages below level.
func NewNamed(name string, level Level, out io.Writer) Logger {
	return &logger{name: name, level: level, out: out}
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, "[INFO]", format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, "[ERROR]", format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, "[DEBUG]", format, args...)
}

func (l *logger) printf(level Level, tag, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.name != "" {
		tag += "\t" + l.name
	}
	fmt.Fprintf(l.out, tag+"\t"+format+"\n", args...)
}
