package js

import (
	"strings"

	"go.uber.org/zap"
)

// ConsoleFunc receives console output. Level is "log", "warn" or "error".
type ConsoleFunc func(level, message string)

// consoleAPI implements console.log, console.warn, and console.error.
type consoleAPI struct {
	sink ConsoleFunc
}

func (c *consoleAPI) register(in *Interpreter) {
	console := NewObject()
	for _, level := range []string{"log", "warn", "error"} {
		level := level
		console.Set(level, native(level, func(args []Value) (Value, error) {
			c.sink(level, formatArgs(args))
			return Undefined{}, nil
		}))
	}
	in.Define("console", console)
}

func formatArgs(args []Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = ToString(arg)
	}
	return strings.Join(parts, " ")
}

// logConsole sends console output to a logger.
func logConsole(log *zap.Logger) ConsoleFunc {
	return func(level, message string) {
		switch level {
		case "error":
			log.Error(message, zap.String("source", "console"))
		case "warn":
			log.Warn(message, zap.String("source", "console"))
		default:
			log.Info(message, zap.String("source", "console"))
		}
	}
}
