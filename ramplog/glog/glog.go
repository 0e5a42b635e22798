// Package glog wires ramplog to github.com/golang/glog.
//
// Importing this package for its side effect installs the adapter:
//
//	import _ "github.com/cayleygraph/ramp/ramplog/glog"
package glog

import (
	"fmt"

	"github.com/cayleygraph/ramp/ramplog"
	"github.com/golang/glog"
)

func init() {
	ramplog.SetLogger(Logger{})
}

// Logger adapts glog to the ramplog.Logger interface.
type Logger struct{}

func (Logger) Infof(format string, args ...interface{}) {
	glog.InfoDepth(2, fmt.Sprintf(format, args...))
}
func (Logger) Warningf(format string, args ...interface{}) {
	glog.WarningDepth(2, fmt.Sprintf(format, args...))
}
func (Logger) Errorf(format string, args ...interface{}) {
	glog.ErrorDepth(2, fmt.Sprintf(format, args...))
}
