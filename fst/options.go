package fst

import "github.com/arloliu/pathfst/format"

// buildConfig holds the effective Build settings after applying options.
type buildConfig struct {
	compression format.CompressionType
}

// BuildOption configures a single Build call.
type BuildOption func(*buildConfig)

func newBuildConfig(opts ...BuildOption) buildConfig {
	cfg := buildConfig{compression: format.CompressionNone}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithCompression selects the codec applied to the node region.
//
// Default is format.CompressionNone, which keeps Open zero-copy over the
// input buffer. Compressed regions are decompressed once at Open.
func WithCompression(compression format.CompressionType) BuildOption {
	return func(cfg *buildConfig) {
		cfg.compression = compression
	}
}
