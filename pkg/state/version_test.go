package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchitajnn/cephci/pkg/connector"
)

func TestCephVersion(t *testing.T) {
	admin, conns := newTestAdmin(t)
	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return []byte("ceph version 18.2.1-194.el9cp (8e411c1c4f7e6a1b0a1b6aeefea92a1e85d9b0b1) reef (stable)\n"), nil, nil
	}

	v, err := CephVersion(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, uint64(18), v.Major())
	assert.Equal(t, uint64(2), v.Minor())
	assert.Equal(t, uint64(1), v.Patch())
	assert.Equal(t, "194.el9cp", v.Prerelease())
}

func TestCephVersionUnrecognized(t *testing.T) {
	admin, conns := newTestAdmin(t)
	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return []byte("something else"), nil, nil
	}

	_, err := CephVersion(context.Background(), admin)
	require.Error(t, err)
}

func TestClusterHealth(t *testing.T) {
	admin, conns := newTestAdmin(t)
	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return []byte(`status: HEALTH_WARN
checks:
  OSDMAP_FLAGS:
    severity: HEALTH_WARN
    summary:
      message: noout flag(s) set
`), nil, nil
	}

	health, err := ClusterHealth(context.Background(), admin)
	require.NoError(t, err)
	assert.False(t, health.OK())
	require.Contains(t, health.Checks, "OSDMAP_FLAGS")
	assert.Equal(t, "noout flag(s) set", health.Checks["OSDMAP_FLAGS"].Summary.Message)
}

func TestClusterHealthOK(t *testing.T) {
	admin, conns := newTestAdmin(t)
	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return []byte("status: HEALTH_OK\nchecks: {}\n"), nil, nil
	}

	health, err := ClusterHealth(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, health.OK())
}
