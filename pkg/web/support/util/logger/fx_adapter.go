package logger

import (
	"strings"

	"go.uber.org/fx/fxevent"
)

// FxLoggerAdapter implements fxevent.Logger on top of this package.
// Wiring noise (provides, invokes, hook entry) is logged at DEBUG; failures and
// the start/stop milestones of the web application are logged at INFO or above.
type FxLoggerAdapter struct{}

// NewFxLoggerAdapter creates a new instance of FxLoggerAdapter.
func NewFxLoggerAdapter() fxevent.Logger {
	return &FxLoggerAdapter{}
}

// LogEvent logs events from Fx.
func (l *FxLoggerAdapter) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuting:
		Debugf("Starting component: %s", shortFunctionName(e.FunctionName))
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			Errorf("Component failed to start: %s (after %s): %v", shortFunctionName(e.FunctionName), e.Runtime, e.Err)
			return
		}
		Debugf("Component started: %s in %s", shortFunctionName(e.FunctionName), e.Runtime)
	case *fxevent.OnStopExecuting:
		Debugf("Stopping component: %s", shortFunctionName(e.FunctionName))
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			Errorf("Component failed to stop: %s: %v", shortFunctionName(e.FunctionName), e.Err)
			return
		}
		Debugf("Component stopped: %s in %s", shortFunctionName(e.FunctionName), e.Runtime)
	case *fxevent.Supplied:
		if e.Err != nil {
			Errorf("Failed to supply %s: %v", e.TypeName, e.Err)
			return
		}
		Debugf("Supplied: %s", e.TypeName)
	case *fxevent.Provided:
		if e.Err != nil {
			Errorf("Failed to register constructor %s: %v", shortFunctionName(e.ConstructorName), e.Err)
			return
		}
		for _, typeName := range e.OutputTypeNames {
			Debugf("Registered component: %s", typeName)
		}
	case *fxevent.Invoking:
		Debugf("Invoking: %s", shortFunctionName(e.FunctionName))
	case *fxevent.Invoked:
		if e.Err != nil {
			Errorf("Invoke failed: %s: %v", shortFunctionName(e.FunctionName), e.Err)
		}
	case *fxevent.Stopping:
		Infof("Received signal %s, shutting down.", strings.ToUpper(e.Signal.String()))
	case *fxevent.Stopped:
		if e.Err != nil {
			Errorf("Application stopped with error: %v", e.Err)
			return
		}
		Infof("Application stopped.")
	case *fxevent.RollingBack:
		Errorf("Application start failed, rolling back: %v", e.StartErr)
	case *fxevent.RolledBack:
		if e.Err != nil {
			Errorf("Rollback failed: %v", e.Err)
		}
	case *fxevent.Started:
		if e.Err != nil {
			Errorf("Application start failed: %v", e.Err)
			return
		}
		Infof("Application started.")
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			Errorf("Fx logger initialization failed: %v", e.Err)
		}
	}
}

// shortFunctionName strips closure suffixes (".func1") that Fx reports for hooks
// registered as anonymous functions, leaving the enclosing function name.
func shortFunctionName(funcName string) string {
	if idx := strings.LastIndex(funcName, ".func"); idx != -1 {
		funcName = funcName[:idx]
	}
	if idx := strings.LastIndex(funcName, "/"); idx != -1 {
		funcName = funcName[idx+1:]
	}
	return funcName
}
