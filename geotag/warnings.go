package geotag

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Warning type constants
const (
	WarningNoTimestamp    = "no_timestamp"
	WarningLowConfidence  = "low_confidence"
	WarningWriteFailed    = "write_failed"
	WarningGPSOverwritten = "gps_overwritten"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects per-photo degradations during a batch and
// outputs consolidated summaries instead of one log line per photo.
type WarningAggregator struct {
	mu       sync.Mutex
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example photo name
func (w *WarningAggregator) Add(warningType, exampleName string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleName)
	}
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for warningType, info := range w.warnings {
		log.Printf("%s", w.formatWarningMessage(warningType, info))
	}
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningNoTimestamp:
		description = "photos with no parseable capture timestamp"
		action = "Skipped, original bytes returned"
	case WarningLowConfidence:
		description = "photos matched beyond the configured time gap"
		action = "Coordinates written, match flagged low confidence"
	case WarningWriteFailed:
		description = "photos whose metadata container could not be rewritten"
		action = "Original bytes returned unchanged"
	case WarningGPSOverwritten:
		description = "photos that already carried geolocation tags"
		action = "Existing tags overwritten with track coordinates"
	default:
		description = "unknown issue"
		action = "Processed with fallback behavior"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Batch has %s (%d occurrences). %s. Examples: %s",
		description, info.count, action, examplesStr)
}
