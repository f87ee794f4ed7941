package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestInitStorage_MemoryWhenDSNEmpty(t *testing.T) {
	logger := log.New().WithField("component", "test")

	repos, store, err := initStorage(context.Background(), DefaultConfig(), logger)
	require.NoError(t, err)

	assert.Nil(t, store)
	assert.NotNil(t, repos.customers)
	assert.NotNil(t, repos.products)
	assert.NotNil(t, repos.orders)
	assert.NotNil(t, repos.uow)
}
