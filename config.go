package jsonnode

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ForceASCII:        false,
		LongAsString:      false,
		AllowLineComments: true,
		ReuseNullInstance: true,
		IndentStep:        DefaultIndentStep,
		MaxJSONSize:       DefaultMaxJSONSize,
		MaxNestingDepth:   DefaultMaxNestingDepth,
		EnableCache:       false,
		MaxCacheSize:      DefaultMaxCacheSize,
		EnableMetrics:     false,
	}
}

// ASCIIConfig returns a configuration whose text output is pure ASCII
func ASCIIConfig() *Config {
	config := DefaultConfig()
	config.ForceASCII = true
	return config
}

// StrictConfig returns a configuration that rejects line comments and
// keeps tighter input limits.
func StrictConfig() *Config {
	config := DefaultConfig()
	config.AllowLineComments = false
	config.MaxJSONSize = 10 * 1024 * 1024
	config.MaxNestingDepth = 128
	return config
}

// CachedConfig returns a configuration with the parse cache enabled
func CachedConfig() *Config {
	config := DefaultConfig()
	config.EnableCache = true
	return config
}

// ValidateConfig validates configuration values and applies corrections
func ValidateConfig(config *Config) error {
	if config == nil {
		return newOperationError("validate_config", "config cannot be nil", ErrInvalidConfig)
	}

	if config.MaxCacheSize < 0 {
		return newOperationError("validate_config", "MaxCacheSize cannot be negative", ErrInvalidConfig)
	}
	if config.IndentStep < 0 {
		return newOperationError("validate_config", "IndentStep cannot be negative", ErrInvalidConfig)
	}
	if config.MaxJSONSize < 0 || config.MaxNestingDepth < 0 {
		return newOperationError("validate_config", "limits cannot be negative", ErrInvalidConfig)
	}

	config.Validate()
	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}

	clone := *c
	return &clone
}

// Validate applies defaults for zero values and clamps out-of-range ones
func (c *Config) Validate() {
	if c.MaxJSONSize <= 0 {
		c.MaxJSONSize = DefaultMaxJSONSize
	}
	if c.MaxNestingDepth <= 0 {
		c.MaxNestingDepth = DefaultMaxNestingDepth
	} else if c.MaxNestingDepth > 10000 {
		c.MaxNestingDepth = 10000
	}

	if c.MaxCacheSize == 0 {
		c.EnableCache = false
	} else if c.MaxCacheSize > 4096 {
		c.MaxCacheSize = 4096
	}
}

// NewLong creates a node for an integer that may exceed float64 precision.
// With LongAsString the value is kept verbatim as a String node.
func (c *Config) NewLong(v int64) *Node {
	if c != nil && c.LongAsString {
		return NewString(formatInt(v))
	}
	return NewNumber(float64(v))
}

// Null returns a Null node according to ReuseNullInstance
func (c *Config) Null() *Node {
	if c == nil || c.ReuseNullInstance {
		return sharedNull
	}
	return &Node{kind: KindNull}
}

// config accessors tolerate a nil receiver so internal callers can pass
// through an absent Config.
func (c *Config) forceASCII() bool        { return c != nil && c.ForceASCII }
func (c *Config) allowLineComments() bool { return c == nil || c.AllowLineComments }

func (c *Config) maxNestingDepth() int {
	if c == nil || c.MaxNestingDepth <= 0 {
		return DefaultMaxNestingDepth
	}
	return c.MaxNestingDepth
}

func (c *Config) indentStep() int {
	if c == nil {
		return DefaultIndentStep
	}
	return c.IndentStep
}
