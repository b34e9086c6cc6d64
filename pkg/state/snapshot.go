// Package state wraps the read-only ceph CLI queries used for assertions in
// orchestrator tests. Every helper runs one fixed command through the admin
// shell, parses the structured output and returns a derived value. Nothing is
// cached or retried; each call reflects live cluster state at query time.
package state

import (
	"context"

	"github.com/shuchitajnn/cephci/pkg/cluster"
	"github.com/shuchitajnn/cephci/pkg/logger"
)

// Snapshot runs the fixed inspection command set plus any caller-supplied
// extras and logs stdout/stderr for each. It is purely observational; the
// first failing command aborts with its error.
func Snapshot(ctx context.Context, admin *cluster.Admin, extra ...string) error {
	log := logger.Get()

	commands := append([]string{
		"ceph status",
		"ceph orch host ls",
		"ceph orch ls -f yaml",
		"ceph orch ps -f json-pretty",
		"ceph health detail -f yaml",
	}, extra...)

	for _, cmd := range commands {
		stdout, stderr, err := admin.Shell(ctx, []string{cmd})
		if err != nil {
			return err
		}
		log.Infof("%s stdout:\n%s", cmd, stdout)
		if stderr != "" {
			log.Errorf("%s stderr:\n%s", cmd, stderr)
		}
	}
	return nil
}
