package jsonnode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cybergodev/jsonnode/internal"
)

// cache namespaces
const (
	cacheText   = "text"
	cacheBinary = "binary"
)

// Processor bundles a Config with the optional parse cache, metrics and
// logging. It is safe for concurrent use; the trees it returns are owned
// by the caller.
type Processor struct {
	config      *Config
	cache       *internal.CacheManager
	metrics     *internal.MetricsCollector
	state       int32 // 0=active, 1=closing, 2=closed
	cleanupOnce sync.Once
	logger      atomic.Pointer[slog.Logger]
}

// New creates a processor with the given configuration.
// If no configuration is provided, uses default configuration.
func New(config ...*Config) *Processor {
	var cfg *Config
	if len(config) > 0 && config[0] != nil {
		cfg = config[0].Clone()
	} else {
		cfg = DefaultConfig()
	}

	if err := ValidateConfig(cfg); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	cacheSize := 0
	if cfg.EnableCache {
		cacheSize = cfg.MaxCacheSize
	}

	var metrics *internal.MetricsCollector
	if cfg.EnableMetrics {
		metrics = internal.NewMetricsCollector(cfg.MetricsRegisterer)
	}

	p := &Processor{
		config:  cfg,
		cache:   internal.NewCacheManager(cacheSize),
		metrics: metrics,
	}
	p.SetLogger(nil)
	return p
}

// Parse parses JSON text with the processor's configuration
func (p *Processor) Parse(text string) (*Node, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	start := time.Now()

	if n, ok := p.cached(cacheText, text); ok {
		p.recordOperation("parse", start, len(text), nil)
		return n, nil
	}

	n, err := parse(text, p.config)
	p.recordOperation("parse", start, len(text), err)
	if err != nil {
		p.logError(context.Background(), "parse", text, err)
		return nil, err
	}
	p.store(cacheText, text, n)
	return n, nil
}

// ParseBytes parses JSON text held in a byte slice
func (p *Processor) ParseBytes(data []byte) (*Node, error) {
	return p.Parse(string(data))
}

// ParseReader reads r to the end and parses the text. Inputs larger than
// MaxJSONSize fail with ErrSizeLimit without being read completely.
func (p *Processor) ParseReader(r io.Reader) (*Node, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(r, p.config.MaxJSONSize+1))
	if err != nil {
		return nil, newOperationError("parse_reader", err.Error(), ErrParse)
	}
	if int64(len(data)) > p.config.MaxJSONSize {
		return nil, newSizeLimitError("parse_reader", int64(len(data)), p.config.MaxJSONSize)
	}
	return p.Parse(string(data))
}

// ToText renders n using the processor's ForceASCII flag and IndentStep.
// Rendering reads only the configuration, so it keeps working after Close.
func (p *Processor) ToText(n *Node, mode TextMode) string {
	return toText(n, mode, p.config.indentStep(), p.config)
}

// WriteText renders n to w
func (p *Processor) WriteText(w io.Writer, n *Node, mode TextMode) error {
	if err := p.checkClosed(); err != nil {
		return err
	}
	return writeText(w, n, mode, p.config.indentStep(), p.config)
}

// EncodeBinary serializes n in the tagged binary format. Like ToText it
// cannot fail and keeps working after Close; use WriteBinary to observe
// ErrProcessorClosed.
func (p *Processor) EncodeBinary(n *Node) []byte {
	start := time.Now()
	data := EncodeBinary(n)
	if !p.IsClosed() {
		p.recordOperation("encode_binary", start, len(data), nil)
	}
	return data
}

// WriteBinary writes the binary form of n to w
func (p *Processor) WriteBinary(w io.Writer, n *Node) error {
	if err := p.checkClosed(); err != nil {
		return err
	}
	start := time.Now()
	err := WriteBinary(w, n)
	p.recordOperation("write_binary", start, 0, err)
	return err
}

// DecodeBinary rebuilds a tree from its binary form
func (p *Processor) DecodeBinary(data []byte) (*Node, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	start := time.Now()

	source := string(data)
	if n, ok := p.cached(cacheBinary, source); ok {
		p.recordOperation("decode_binary", start, len(data), nil)
		return n, nil
	}

	n, err := decodeBinary(data, p.config)
	p.recordOperation("decode_binary", start, len(data), err)
	if err != nil {
		p.logError(context.Background(), "decode_binary", "", err)
		return nil, err
	}
	p.store(cacheBinary, source, n)
	return n, nil
}

// ReadBinary reads one encoded tree from r
func (p *Processor) ReadBinary(r io.Reader) (*Node, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	start := time.Now()
	n, err := readBinary(r, p.config)
	p.recordOperation("read_binary", start, 0, err)
	if err != nil {
		p.logError(context.Background(), "read_binary", "", err)
		return nil, err
	}
	return n, nil
}

// EncodeBinaryBase64 returns the binary form of n as base64 text. It is
// served after Close like EncodeBinary.
func (p *Processor) EncodeBinaryBase64(n *Node) string {
	return EncodeBinaryBase64(n)
}

// DecodeBinaryBase64 decodes base64 text produced by EncodeBinaryBase64
func (p *Processor) DecodeBinaryBase64(text string) (*Node, error) {
	if err := p.checkClosed(); err != nil {
		return nil, err
	}
	start := time.Now()
	n, err := decodeBinaryBase64(text, p.config)
	p.recordOperation("decode_binary_base64", start, len(text), err)
	if err != nil {
		p.logError(context.Background(), "decode_binary_base64", "", err)
		return nil, err
	}
	return n, nil
}

// cached returns a private copy of a cached tree
func (p *Processor) cached(namespace, source string) (*Node, bool) {
	if !p.cache.Enabled() || len(source) < cacheKeyMinSize {
		return nil, false
	}
	v, ok := p.cache.Get(namespace, source)
	if !ok {
		if p.metrics != nil {
			p.metrics.RecordCacheMiss()
		}
		return nil, false
	}
	if p.metrics != nil {
		p.metrics.RecordCacheHit()
	}
	p.getLogger().Debug("cache hit", slog.String("namespace", namespace), slog.Int("size", len(source)))
	return v.(*Node).Clone(), true
}

func (p *Processor) store(namespace, source string, n *Node) {
	if !p.cache.Enabled() || len(source) < cacheKeyMinSize {
		return
	}
	p.cache.Set(namespace, source, n.Clone())
}

func (p *Processor) recordOperation(op string, start time.Time, size int, err error) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordOperation(op, time.Since(start), size, err == nil)
}

// Stats returns processor statistics
func (p *Processor) Stats() Stats {
	hits, misses := p.cache.Stats()
	var ratio float64
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}

	stats := Stats{
		CacheSize:    p.cache.Len(),
		MaxCacheSize: p.cache.MaxSize(),
		HitCount:     hits,
		MissCount:    misses,
		HitRatio:     ratio,
		CacheEnabled: p.cache.Enabled(),
		IsClosed:     p.IsClosed(),
	}
	if p.metrics != nil {
		stats.Operations, stats.Errors = p.metrics.Operations()
		stats.Uptime = p.metrics.Uptime()
	}
	return stats
}

// ClearCache drops all cached trees
func (p *Processor) ClearCache() {
	p.cache.Clear()
}

// GetConfig returns a copy of the processor's configuration
func (p *Processor) GetConfig() *Config {
	return p.config.Clone()
}

// SetLogger sets a custom structured logger for the processor
func (p *Processor) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	p.logger.Store(logger.With("component", "jsonnode-processor"))
}

func (p *Processor) getLogger() *slog.Logger {
	return p.logger.Load()
}

// Close releases the cache. Further parse, decode and write calls fail with
// ErrProcessorClosed; ToText, EncodeBinary and EncodeBinaryBase64 return
// values only and stay available.
func (p *Processor) Close() error {
	p.cleanupOnce.Do(func() {
		atomic.StoreInt32(&p.state, 1)
		p.cache.Clear()
		atomic.StoreInt32(&p.state, 2)
	})
	return nil
}

// IsClosed reports whether Close has completed
func (p *Processor) IsClosed() bool {
	return atomic.LoadInt32(&p.state) == 2
}

// checkClosed returns an error if the processor is closed or closing
func (p *Processor) checkClosed() error {
	switch atomic.LoadInt32(&p.state) {
	case 0:
		return nil
	case 1:
		return newOperationError("check_closed", "processor is closing", ErrProcessorClosed)
	default:
		return newOperationError("check_closed", "processor is closed", ErrProcessorClosed)
	}
}

func (p *Processor) getProcessorID() string {
	return fmt.Sprintf("proc_%p", p)
}
