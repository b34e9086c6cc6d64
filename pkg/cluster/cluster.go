package cluster

import "fmt"

// NodeNotFoundError reports a logical node id with no matching cluster node.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("node %q not found in cluster", e.ID)
}

// Cluster is the topology registry: an ordered set of nodes addressed by
// logical id, hostname or role. It holds references only; it never mutates
// the nodes it hands out. Not safe for concurrent mutation.
type Cluster struct {
	Name  string
	nodes []*Node
}

// New builds a Cluster over the given nodes. Node order is preserved and is
// the order Nodes() reports.
func New(name string, nodes []*Node) *Cluster {
	return &Cluster{Name: name, nodes: nodes}
}

// Nodes returns all nodes in inventory order.
func (c *Cluster) Nodes() []*Node {
	return c.nodes
}

// NodeByID resolves a logical node id. Unknown ids return *NodeNotFoundError.
func (c *Cluster) NodeByID(id string) (*Node, error) {
	for _, n := range c.nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, &NodeNotFoundError{ID: id}
}

// NodesByIDs resolves a list of logical node ids, preserving input order.
// The first unknown id aborts with *NodeNotFoundError.
func (c *Cluster) NodesByIDs(ids []string) ([]*Node, error) {
	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		n, err := c.NodeByID(id)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// NodesByRole returns every node carrying role, in inventory order.
func (c *Cluster) NodesByRole(role string) []*Node {
	var nodes []*Node
	for _, n := range c.nodes {
		if n.HasRole(role) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
