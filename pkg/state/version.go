package state

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/shuchitajnn/cephci/pkg/cluster"
)

// `ceph version 18.2.1-194.el9cp (...) reef (stable)`
var cephVersionRe = regexp.MustCompile(`ceph version (\d+\.\d+\.\d+(?:-[\w.]+)?)`)

// CephVersion queries and parses the cluster's ceph release version. Tests
// use it to gate features on the deployed release.
func CephVersion(ctx context.Context, admin *cluster.Admin) (*semver.Version, error) {
	out, _, err := admin.Shell(ctx, []string{"ceph", "version"})
	if err != nil {
		return nil, err
	}
	match := cephVersionRe.FindStringSubmatch(out)
	if match == nil {
		return nil, fmt.Errorf("unrecognized ceph version output: %q", out)
	}
	version, err := semver.NewVersion(match[1])
	if err != nil {
		return nil, fmt.Errorf("failed to parse ceph version %q: %w", match[1], err)
	}
	return version, nil
}
