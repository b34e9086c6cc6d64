package state

import (
	"context"
	"path"
	"strings"

	"github.com/shuchitajnn/cephci/pkg/cluster"
	"github.com/shuchitajnn/cephci/pkg/logger"
)

// logDaemonTypes are the daemon kinds expected to write per-daemon log files
// once file logging is enabled.
var logDaemonTypes = map[string]bool{
	"mon": true,
	"mgr": true,
	"osd": true,
	"rgw": true,
	"mds": true,
}

// PathExists checks whether path exists on the node using `ls -l` with
// elevated privilege. Command failures are logged and reported as false,
// never as an error.
func PathExists(ctx context.Context, node *cluster.Node, p string) bool {
	log := logger.Get()
	out, _, err := node.ExecCommand(ctx, "ls -l "+p, true)
	if err != nil {
		log.Errorf("path check on %s failed: %v", node.Hostname, err)
		return false
	}
	log.Infof("output: %s", out)
	return true
}

// logFileName returns the expected log file name for a daemon. RGW daemons
// log under a client. prefix.
func logFileName(daemon string) string {
	if strings.SplitN(daemon, ".", 2)[0] == "rgw" {
		return "ceph-client." + daemon + ".log"
	}
	return "ceph-" + daemon + ".log"
}

// VerifyLogFilesCreated enables file logging cluster-wide and checks that
// every mon, mgr, osd, rgw and mds daemon has its expected log file under
// /var/log/ceph/<fsid>/ on the node it runs on. The first missing file stops
// the check and returns false; remaining nodes are not visited. Failures of
// the enabling or fsid commands surface as errors.
func VerifyLogFilesCreated(ctx context.Context, admin *cluster.Admin) (bool, error) {
	log := logger.Get()

	if _, _, err := admin.Shell(ctx, []string{"ceph", "config", "set", "global", "log_to_file", "true"}); err != nil {
		return false, err
	}
	out, _, err := admin.Shell(ctx, []string{"ceph", "fsid"})
	if err != nil {
		return false, err
	}
	logDir := path.Join("/var/log/ceph", strings.TrimSpace(out))

	daemonMap, err := HostDaemonMap(ctx, admin)
	if err != nil {
		return false, err
	}

	for _, node := range admin.Cluster().Nodes() {
		daemons, ok := daemonMap[node.Hostname]
		if !ok {
			continue
		}
		for _, daemon := range daemons {
			if !logDaemonTypes[strings.SplitN(daemon, ".", 2)[0]] {
				continue
			}
			file := path.Join(logDir, logFileName(daemon))
			log.Infof("verifying existence of log file %s on host %s", file, node.Hostname)
			if !PathExists(ctx, node, file) {
				log.Errorf("log for %s is not present on node %s", daemon, node.IPAddress)
				return false, nil
			}
		}
		log.Infof("log verification on node %s successful", node.IPAddress)
	}
	return true, nil
}
