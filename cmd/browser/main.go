// Command browser renders pages with the miniature engine and exposes the
// intermediate stages (DOM, paint commands, script tokens) for inspection.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Arun03Kumar/browser/pkg/logging"
)

func main() {
	err := newRootCommand().Execute()
	logging.Sync()
	if err != nil {
		logging.L().Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
