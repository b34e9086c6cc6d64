// Package cluster models the test cluster topology: nodes with roles and
// addresses, lookup by logical id, and the cephadm shell entry point used by
// the orchestrator helpers. It owns no cluster lifecycle; nodes are described
// by an inventory and reached through pkg/connector.
package cluster

import (
	"context"

	"github.com/shuchitajnn/cephci/pkg/connector"
)

// Node is a single machine in the test cluster. The logical ID (node1, node2,
// ...) is how test configs refer to it; Hostname is the short name the
// orchestrator knows it by.
type Node struct {
	ID        string
	Hostname  string
	IPAddress string
	Roles     []string

	conn connector.Connector
}

// NewNode builds a Node bound to a connector.
func NewNode(id, hostname, ipAddress string, roles []string, conn connector.Connector) *Node {
	return &Node{
		ID:        id,
		Hostname:  hostname,
		IPAddress: ipAddress,
		Roles:     roles,
		conn:      conn,
	}
}

// HasRole reports whether the node carries the given role.
func (n *Node) HasRole(role string) bool {
	for _, r := range n.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ExecCommand runs cmd on the node and returns stdout and stderr. Non-zero
// exits surface as *connector.CommandError.
func (n *Node) ExecCommand(ctx context.Context, cmd string, sudo bool) (string, string, error) {
	stdout, stderr, err := n.conn.Exec(ctx, cmd, &connector.ExecOptions{Sudo: sudo})
	return string(stdout), string(stderr), err
}

// WriteFile creates or replaces path on the node with content, flushed before
// return.
func (n *Node) WriteFile(ctx context.Context, content []byte, path string, sudo bool) error {
	return n.conn.WriteFile(ctx, content, path, &connector.FileTransferOptions{Sudo: sudo})
}

// Connector exposes the underlying transport, mainly for tests.
func (n *Node) Connector() connector.Connector {
	return n.conn
}
