// Package internal holds process-level helpers shared by the geotagging CLI.
package internal

import (
	"log"
	"os"
)

// InitLogging routes the standard logger to stdout with microsecond
// timestamps, so batch progress and warning summaries interleave in order.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
