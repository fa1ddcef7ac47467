package jsonnode

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config holds the engine flags and processor settings.
//
// A Config is passed explicitly to every parse, write and codec call; there is
// no process-wide mutable state. Treat a Config as read-only once it has been
// handed to a Processor.
type Config struct {
	// Engine flags
	ForceASCII        bool `json:"force_ascii"`         // escape every code point above 127 as \uXXXX
	LongAsString      bool `json:"long_as_string"`      // NewLong produces String nodes
	AllowLineComments bool `json:"allow_line_comments"` // "//" outside quotes discards the rest of the line
	ReuseNullInstance bool `json:"reuse_null_instance"` // parser, decoder and Null() share one immutable Null node

	// Text output
	IndentStep int `json:"indent_step"`

	// Size limits
	MaxJSONSize     int64 `json:"max_json_size"`
	MaxNestingDepth int   `json:"max_nesting_depth"`

	// Cache settings
	EnableCache  bool `json:"enable_cache"`
	MaxCacheSize int  `json:"max_cache_size"`

	// Metrics
	EnableMetrics     bool                  `json:"enable_metrics"`
	MetricsRegisterer prometheus.Registerer `json:"-"`
}

// GetLimits returns a summary of the configured limits
func (c *Config) GetLimits() map[string]any {
	return map[string]any{
		"max_json_size":     c.MaxJSONSize,
		"max_nesting_depth": c.MaxNestingDepth,
		"max_cache_size":    c.MaxCacheSize,
	}
}

// Stats provides processor statistics
type Stats struct {
	CacheSize    int     `json:"cache_size"`
	MaxCacheSize int     `json:"max_cache_size"`
	HitCount     int64   `json:"hit_count"`
	MissCount    int64   `json:"miss_count"`
	HitRatio     float64 `json:"hit_ratio"`
	CacheEnabled bool    `json:"cache_enabled"`
	IsClosed     bool    `json:"is_closed"`
	Operations   int64   `json:"operations"`
	Errors       int64   `json:"errors"`

	// Uptime is the time since the processor was created; zero unless
	// EnableMetrics is set.
	Uptime time.Duration `json:"uptime"`
}
