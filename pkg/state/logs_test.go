package state

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchitajnn/cephci/pkg/connector"
)

func TestPathExists(t *testing.T) {
	admin, conns := newTestAdmin(t)
	node := admin.Cluster().Nodes()[1]

	assert.True(t, PathExists(context.Background(), node, "/var/log/ceph"))
	assert.Equal(t, "ls -l /var/log/ceph", conns["node2"].LastExecCmd)
	require.NotNil(t, conns["node2"].LastExecOptions)
	assert.True(t, conns["node2"].LastExecOptions.Sudo)
}

func TestPathExistsSwallowsCommandFailure(t *testing.T) {
	admin, conns := newTestAdmin(t)
	node := admin.Cluster().Nodes()[1]

	conns["node2"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return nil, []byte("no such file"), &connector.CommandError{Cmd: cmd, ExitCode: 2, Stderr: "no such file"}
	}

	// Failure becomes false, never an error.
	assert.False(t, PathExists(context.Background(), node, "/nope"))
}

func TestLogFileName(t *testing.T) {
	assert.Equal(t, "ceph-mon.a.log", logFileName("mon.a"))
	assert.Equal(t, "ceph-osd.3.log", logFileName("osd.3"))
	assert.Equal(t, "ceph-client.rgw.india.host.abc.log", logFileName("rgw.india.host.abc"))
}

// scriptVerifyFixture wires a daemon layout where ceph-node-1 runs mon.a and
// osd.0, ceph-node-2 runs mgr.x plus a daemon type outside the checked set.
func scriptVerifyFixture(conns map[string]*connector.MockConnector, psJSON string) {
	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		switch {
		case strings.Contains(cmd, "orch ps"):
			return []byte(psJSON), nil, nil
		case strings.Contains(cmd, "ceph fsid"):
			return []byte("9f2c4e36-1f0b-11ef-9b50-000000000000\n"), nil, nil
		case strings.HasPrefix(cmd, "ls -l "):
			return []byte("-rw-r--r--"), nil, nil
		default:
			return []byte(""), nil, nil
		}
	}
}

func TestVerifyLogFilesCreatedAllPresent(t *testing.T) {
	admin, conns := newTestAdmin(t)
	scriptVerifyFixture(conns, `[
	  {"daemon_type": "mon", "daemon_id": "a", "hostname": "ceph-node-1"},
	  {"daemon_type": "crash", "daemon_id": "c", "hostname": "ceph-node-1"},
	  {"daemon_type": "osd", "daemon_id": "0", "hostname": "ceph-node-2"},
	  {"daemon_type": "rgw", "daemon_id": "india.node2.xyz", "hostname": "ceph-node-2"}
	]`)

	ok, err := VerifyLogFilesCreated(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, ok)

	// Logging got enabled cluster-wide first.
	assert.Contains(t, conns["node1"].ExecHistory[0], "config set global log_to_file true")

	// mon.a checked on node1; crash.c filtered out of the checked set.
	var node1Ls []string
	for _, cmd := range conns["node1"].ExecHistory {
		if strings.HasPrefix(cmd, "ls -l ") {
			node1Ls = append(node1Ls, cmd)
		}
	}
	require.Len(t, node1Ls, 1)
	assert.Equal(t, "ls -l /var/log/ceph/9f2c4e36-1f0b-11ef-9b50-000000000000/ceph-mon.a.log", node1Ls[0])

	// osd.0 and the rgw daemon (client-prefixed file) checked on node2.
	require.Len(t, conns["node2"].ExecHistory, 2)
	assert.Contains(t, conns["node2"].ExecHistory[0], "ceph-osd.0.log")
	assert.Contains(t, conns["node2"].ExecHistory[1], "ceph-client.rgw.india.node2.xyz.log")
}

func TestVerifyLogFilesCreatedShortCircuits(t *testing.T) {
	admin, conns := newTestAdmin(t)
	scriptVerifyFixture(conns, `[
	  {"daemon_type": "mon", "daemon_id": "a", "hostname": "ceph-node-1"},
	  {"daemon_type": "osd", "daemon_id": "0", "hostname": "ceph-node-2"},
	  {"daemon_type": "osd", "daemon_id": "1", "hostname": "ceph-node-3"}
	]`)

	// First checked file (mon.a on node1) is missing.
	base := conns["node1"].ExecFunc
	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		if strings.HasPrefix(cmd, "ls -l ") {
			return nil, []byte("no such file"), &connector.CommandError{Cmd: cmd, ExitCode: 2}
		}
		return base(ctx, cmd, opts)
	}

	ok, err := VerifyLogFilesCreated(context.Background(), admin)
	require.NoError(t, err)
	assert.False(t, ok)

	// Subsequent hosts were never visited.
	assert.Empty(t, conns["node2"].ExecHistory)
	assert.Empty(t, conns["node3"].ExecHistory)
}

func TestVerifyLogFilesCreatedSetupFailure(t *testing.T) {
	admin, conns := newTestAdmin(t)
	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return nil, nil, &connector.CommandError{Cmd: cmd, ExitCode: 1}
	}

	ok, err := VerifyLogFilesCreated(context.Background(), admin)
	assert.False(t, ok)
	require.Error(t, err)
}
