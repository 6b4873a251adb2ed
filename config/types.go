package config

import "time"

// MatchConfig controls how photo capture times are matched against the track.
type MatchConfig struct {
	// MaxTimeGapSeconds marks matches further than this from any track
	// sample as low confidence. Zero disables the flag.
	MaxTimeGapSeconds int `yaml:"maxTimeGapSeconds" validate:"gte=0"`
	// Interpolate enables linear interpolation between neighboring samples.
	Interpolate bool `yaml:"interpolate"`
	// MaxInterpolationGapSeconds is the largest neighbor-to-neighbor gap
	// interpolation will bridge; beyond it the nearest sample is used as-is.
	// Zero disables bridging.
	MaxInterpolationGapSeconds int `yaml:"maxInterpolationGapSeconds" validate:"gte=0"`
	// ClockOffsetSeconds is added to every capture timestamp before
	// matching. A camera whose clock shows UTC+8 wallclock needs -28800.
	ClockOffsetSeconds int `yaml:"clockOffsetSeconds"`
}

// WriteConfig controls what the metadata writer puts back into the photo.
type WriteConfig struct {
	// SetTimeFromTrack rewrites the EXIF date/time fields from the matched
	// track point in addition to the GPS fields.
	SetTimeFromTrack bool `yaml:"setTimeFromTrack"`
	// OutputUTCOffsetHours shifts rewritten timestamps into a local zone,
	// e.g. 8 for UTC+8.
	OutputUTCOffsetHours int `yaml:"outputUTCOffsetHours"`
}

// BatchConfig controls batch execution.
type BatchConfig struct {
	// Workers is the number of photos processed concurrently. 0 or 1 means
	// sequential processing.
	Workers int `yaml:"workers" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Match MatchConfig `yaml:"match"`
	Write WriteConfig `yaml:"write"`
	Batch BatchConfig `yaml:"batch"`
}

// MaxTimeGap returns MaxTimeGapSeconds as a duration.
func (m MatchConfig) MaxTimeGap() time.Duration {
	return time.Duration(m.MaxTimeGapSeconds) * time.Second
}

// MaxInterpolationGap returns MaxInterpolationGapSeconds as a duration.
func (m MatchConfig) MaxInterpolationGap() time.Duration {
	return time.Duration(m.MaxInterpolationGapSeconds) * time.Second
}

// ClockOffset returns ClockOffsetSeconds as a duration.
func (m MatchConfig) ClockOffset() time.Duration {
	return time.Duration(m.ClockOffsetSeconds) * time.Second
}

// OutputUTCOffset returns OutputUTCOffsetHours as a duration.
func (w WriteConfig) OutputUTCOffset() time.Duration {
	return time.Duration(w.OutputUTCOffsetHours) * time.Hour
}
