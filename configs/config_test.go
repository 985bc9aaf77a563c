package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RedisClusterAddrs(t *testing.T) {
	t.Setenv("REDIS_CLUSTER_ADDRS", "node1:6379, node2:6379,,node3:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"node1:6379", "node2:6379", "node3:6379"}, cfg.Redis.ClusterAddrs)
}

func TestLoad_RedisClusterAddrsDefaultEmpty(t *testing.T) {
	t.Setenv("REDIS_CLUSTER_ADDRS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Redis.ClusterAddrs)
}
