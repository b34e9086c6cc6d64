package state

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/shuchitajnn/cephci/pkg/cluster"
)

// HostOSDMap parses `ceph osd tree` and maps each host to the OSD ids placed
// on it. Tree entries whose type is not "host" (roots, racks, the OSD leaves
// themselves) are skipped.
func HostOSDMap(ctx context.Context, admin *cluster.Admin) (map[string][]int, error) {
	out, _, err := admin.Shell(ctx, []string{"ceph", "osd", "tree", "-f", "json"})
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(out) {
		return nil, fmt.Errorf("osd tree output is not valid JSON")
	}

	osdMap := make(map[string][]int)
	gjson.Get(out, "nodes").ForEach(func(_, node gjson.Result) bool {
		if node.Get("type").String() != "host" {
			return true
		}
		children := node.Get("children").Array()
		ids := make([]int, 0, len(children))
		for _, child := range children {
			ids = append(ids, int(child.Int()))
		}
		osdMap[node.Get("name").String()] = ids
		return true
	})
	return osdMap, nil
}

// HostDaemonMap parses `ceph orch ps` and maps each host to its daemons as
// "<daemon_type>.<daemon_id>" strings, preserving first-seen order per host.
func HostDaemonMap(ctx context.Context, admin *cluster.Admin) (map[string][]string, error) {
	out, _, err := admin.Shell(ctx, []string{"ceph", "orch", "ps", "-f", "json"})
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(out) {
		return nil, fmt.Errorf("orch ps output is not valid JSON")
	}

	daemonMap := make(map[string][]string)
	gjson.Parse(out).ForEach(func(_, daemon gjson.Result) bool {
		name := daemon.Get("daemon_type").String() + "." + daemon.Get("daemon_id").String()
		hostname := daemon.Get("hostname").String()
		daemonMap[hostname] = append(daemonMap[hostname], name)
		return true
	})
	return daemonMap, nil
}

// DeployedHosts parses `ceph orch host ls` and returns the hostnames known to
// the orchestrator, in listing order.
func DeployedHosts(ctx context.Context, admin *cluster.Admin) ([]string, error) {
	out, _, err := admin.Shell(ctx, []string{"ceph", "orch", "host", "ls", "-f", "json"})
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(out) {
		return nil, fmt.Errorf("orch host ls output is not valid JSON")
	}

	var hosts []string
	gjson.Parse(out).ForEach(func(_, host gjson.Result) bool {
		hosts = append(hosts, host.Get("hostname").String())
		return true
	})
	return hosts, nil
}
