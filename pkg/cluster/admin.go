package cluster

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// RoleInstaller marks the node cephadm was bootstrapped from; the admin
// keyring lives there and every ceph CLI invocation goes through it.
const RoleInstaller = "installer"

// Admin drives the orchestrator CLI through the installer node's cephadm
// shell. It holds references only and is not safe for concurrent use.
type Admin struct {
	cluster   *Cluster
	installer *Node
}

// NewAdmin locates the installer node of the cluster and returns an Admin
// bound to it.
func NewAdmin(c *Cluster) (*Admin, error) {
	installers := c.NodesByRole(RoleInstaller)
	if len(installers) == 0 {
		return nil, fmt.Errorf("cluster %s has no %s node", c.Name, RoleInstaller)
	}
	return &Admin{cluster: c, installer: installers[0]}, nil
}

// Cluster returns the topology registry the admin operates on.
func (a *Admin) Cluster() *Cluster {
	return a.cluster
}

// Installer returns the node hosting the cephadm shell.
func (a *Admin) Installer() *Node {
	return a.installer
}

// Shell runs the given ceph CLI arguments inside a cephadm shell on the
// installer node and returns stdout and stderr. Non-zero exits propagate as
// *connector.CommandError.
func (a *Admin) Shell(ctx context.Context, args []string) (string, string, error) {
	cmd := "cephadm shell -- " + strings.Join(args, " ")
	stdout, stderr, err := a.installer.ExecCommand(ctx, cmd, true)
	if err != nil {
		return stdout, stderr, errors.Wrapf(err, "cephadm shell invocation %q failed", strings.Join(args, " "))
	}
	return stdout, stderr, nil
}

// ApplySpec feeds a spec document already present on the installer node to
// the orchestrator.
func (a *Admin) ApplySpec(ctx context.Context, path string) error {
	_, _, err := a.Shell(ctx, []string{"ceph", "orch", "apply", "-i", path})
	return err
}
