package state

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/shuchitajnn/cephci/pkg/cluster"
)

// HealthCheck is one active health warning or error.
type HealthCheck struct {
	Severity string `yaml:"severity"`
	Summary  struct {
		Message string `yaml:"message"`
	} `yaml:"summary"`
}

// Health is the decoded output of `ceph health detail`.
type Health struct {
	Status string                 `yaml:"status"`
	Checks map[string]HealthCheck `yaml:"checks"`
}

// OK reports whether the cluster is fully healthy.
func (h *Health) OK() bool {
	return h.Status == "HEALTH_OK"
}

// ClusterHealth queries and decodes the cluster health detail.
func ClusterHealth(ctx context.Context, admin *cluster.Admin) (*Health, error) {
	out, _, err := admin.Shell(ctx, []string{"ceph", "health", "detail", "-f", "yaml"})
	if err != nil {
		return nil, err
	}
	var health Health
	if err := yaml.Unmarshal([]byte(out), &health); err != nil {
		return nil, errors.Wrap(err, "failed to decode health detail")
	}
	return &health, nil
}
