package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	compression string
	maxNameLen  int
}

func withCompression(name string) Option[*testConfig] {
	return New(func(c *testConfig) error {
		if name == "" {
			return errors.New("empty compression name")
		}
		c.compression = name

		return nil
	})
}

func withMaxNameLen(n int) Option[*testConfig] {
	return NoError(func(c *testConfig) {
		c.maxNameLen = n
	})
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withCompression("zstd"), withMaxNameLen(64))

	require.NoError(t, err)
	assert.Equal(t, "zstd", cfg.compression)
	assert.Equal(t, 64, cfg.maxNameLen)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{compression: "none"}

	require.NoError(t, Apply(cfg))
	assert.Equal(t, "none", cfg.compression)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withCompression(""), withMaxNameLen(64))

	require.Error(t, err)
	assert.Equal(t, 0, cfg.maxNameLen, "options after a failing one must not run")
}

func TestApply_OrderMatters(t *testing.T) {
	cfg := &testConfig{}

	require.NoError(t, Apply(cfg, withMaxNameLen(32), withMaxNameLen(128)))
	assert.Equal(t, 128, cfg.maxNameLen, "later options override earlier ones")
}
