package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// writerConfig stands in for the kind of config struct ArchiveWriter/Codec
// constructors configure with functional options (compression hint, cache
// size, dedup toggle).
type writerConfig struct {
	compressionHint int
	cacheBytes      int64
	dedupEnabled    bool
}

func withCompressionHint(hint int) *Func[*writerConfig] {
	return New(func(c *writerConfig) error {
		if hint < -1 || hint > 9 {
			return errors.New("compression hint out of range")
		}
		c.compressionHint = hint
		return nil
	})
}

func withDedup(enabled bool) *Func[*writerConfig] {
	return NoError(func(c *writerConfig) {
		c.dedupEnabled = enabled
	})
}

func TestApply_SetsFields(t *testing.T) {
	cfg := &writerConfig{}
	err := Apply[*writerConfig](cfg, withCompressionHint(6), withDedup(true))
	require.NoError(t, err)
	require.Equal(t, 6, cfg.compressionHint)
	require.True(t, cfg.dedupEnabled)
}

func TestApply_StopsOnFirstError(t *testing.T) {
	cfg := &writerConfig{cacheBytes: 42}
	err := Apply[*writerConfig](cfg, withCompressionHint(100), withDedup(true))
	require.Error(t, err)
	require.False(t, cfg.dedupEnabled, "later options must not run after an earlier one fails")
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &writerConfig{}
	require.NoError(t, Apply[*writerConfig](cfg))
}

func TestNoError_NeverFails(t *testing.T) {
	cfg := &writerConfig{}
	opt := NoError(func(c *writerConfig) { c.cacheBytes = 1024 })
	require.NoError(t, Apply[*writerConfig](cfg, opt))
	require.EqualValues(t, 1024, cfg.cacheBytes)
}
