package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvInt(t *testing.T) {
	assert.Equal(t, 50, EnvInt("TEST_POOL_SIZE", 50))

	t.Setenv("TEST_POOL_SIZE", "25")
	assert.Equal(t, 25, EnvInt("TEST_POOL_SIZE", 50))

	t.Setenv("TEST_POOL_SIZE", "banana")
	assert.Equal(t, 50, EnvInt("TEST_POOL_SIZE", 50))
}
