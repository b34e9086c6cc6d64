package spec

import (
	"github.com/shuchitajnn/cephci/pkg/cluster"
)

// ResolvePlacement returns a copy of p with every logical node id in
// p.Nodes replaced by the node's hostname under Hosts. The input is never
// mutated; the returned placement carries no node ids. Unknown ids abort
// with *cluster.NodeNotFoundError. A nil placement resolves to nil.
func ResolvePlacement(c *cluster.Cluster, p *Placement) (*Placement, error) {
	if p == nil {
		return nil, nil
	}
	resolved := *p
	resolved.Nodes = nil
	if len(p.Nodes) > 0 {
		nodes, err := c.NodesByIDs(p.Nodes)
		if err != nil {
			return nil, err
		}
		hosts := make([]string, 0, len(nodes))
		for _, n := range nodes {
			hosts = append(hosts, n.Hostname)
		}
		resolved.Hosts = hosts
	}
	return &resolved, nil
}
