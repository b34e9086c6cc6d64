package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuchitajnn/cephci/pkg/connector"
)

func testCluster() (*Cluster, map[string]*connector.MockConnector) {
	conns := map[string]*connector.MockConnector{
		"node1": connector.NewMockConnector(),
		"node2": connector.NewMockConnector(),
		"node3": connector.NewMockConnector(),
	}
	nodes := []*Node{
		NewNode("node1", "ceph-node-1", "10.0.0.1", []string{"installer", "mon", "mgr"}, conns["node1"]),
		NewNode("node2", "ceph-node-2", "10.0.0.2", []string{"mon", "osd"}, conns["node2"]),
		NewNode("node3", "ceph-node-3", "10.0.0.3", []string{"client"}, conns["node3"]),
	}
	return New("qe", nodes), conns
}

func TestNodeByID(t *testing.T) {
	c, _ := testCluster()

	n, err := c.NodeByID("node2")
	require.NoError(t, err)
	assert.Equal(t, "ceph-node-2", n.Hostname)

	_, err = c.NodeByID("node9")
	require.Error(t, err)
	var notFound *NodeNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "node9", notFound.ID)
}

func TestNodesByIDsPreservesOrder(t *testing.T) {
	c, _ := testCluster()

	nodes, err := c.NodesByIDs([]string{"node3", "node1"})
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "ceph-node-3", nodes[0].Hostname)
	assert.Equal(t, "ceph-node-1", nodes[1].Hostname)

	_, err = c.NodesByIDs([]string{"node1", "bogus"})
	var notFound *NodeNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestNodesByRole(t *testing.T) {
	c, _ := testCluster()

	mons := c.NodesByRole("mon")
	require.Len(t, mons, 2)
	assert.Equal(t, "node1", mons[0].ID)
	assert.Equal(t, "node2", mons[1].ID)

	assert.Empty(t, c.NodesByRole("rgw"))
}

func TestAdminShellWrapsCephadm(t *testing.T) {
	c, conns := testCluster()
	admin, err := NewAdmin(c)
	require.NoError(t, err)
	assert.Equal(t, "node1", admin.Installer().ID)

	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return []byte("  cluster: ok"), []byte(""), nil
	}

	out, _, err := admin.Shell(context.Background(), []string{"ceph", "status"})
	require.NoError(t, err)
	assert.Equal(t, "  cluster: ok", out)
	assert.Equal(t, "cephadm shell -- ceph status", conns["node1"].LastExecCmd)
	require.NotNil(t, conns["node1"].LastExecOptions)
	assert.True(t, conns["node1"].LastExecOptions.Sudo)
}

func TestNewAdminRequiresInstaller(t *testing.T) {
	c := New("empty", []*Node{
		NewNode("node1", "h1", "10.0.0.1", []string{"osd"}, connector.NewMockConnector()),
	})
	_, err := NewAdmin(c)
	require.Error(t, err)
}

func TestAdminShellPropagatesCommandError(t *testing.T) {
	c, conns := testCluster()
	admin, err := NewAdmin(c)
	require.NoError(t, err)

	conns["node1"].ExecFunc = func(ctx context.Context, cmd string, opts *connector.ExecOptions) ([]byte, []byte, error) {
		return nil, []byte("denied"), &connector.CommandError{Cmd: cmd, ExitCode: 13, Stderr: "denied"}
	}

	_, _, err = admin.Shell(context.Background(), []string{"ceph", "fsid"})
	require.Error(t, err)
	var cmdErr *connector.CommandError
	assert.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 13, cmdErr.ExitCode)
}

func TestLoadInventory(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/inventory.yaml"
	content := `
name: qe
ssh:
  user: cephuser
  privateKeyPath: /home/cephuser/.ssh/id_rsa
nodes:
  - id: node1
    hostname: ceph-node-1
    address: 10.0.0.1
    roles: [installer, mon]
  - id: node2
    hostname: ceph-node-2
    address: 10.0.0.2
    roles: [osd]
    ssh:
      user: root
      port: 2222
`
	require.NoError(t, writeFile(path, content))

	inv, err := LoadInventory(path)
	require.NoError(t, err)
	assert.Equal(t, "qe", inv.Name)
	require.Len(t, inv.Nodes, 2)

	cfg := inv.connectionCfg(inv.Nodes[0])
	assert.Equal(t, "cephuser", cfg.User)
	assert.Equal(t, "10.0.0.1", cfg.Host)

	cfg = inv.connectionCfg(inv.Nodes[1])
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, 2222, cfg.Port)
	assert.Equal(t, "/home/cephuser/.ssh/id_rsa", cfg.PrivateKeyPath)
}

func TestLoadInventoryRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/empty.yaml"
	require.NoError(t, writeFile(path, "name: qe\nnodes: []\n"))
	_, err := LoadInventory(path)
	require.Error(t, err)
}
