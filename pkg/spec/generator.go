package spec

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/shuchitajnn/cephci/pkg/cluster"
	"github.com/shuchitajnn/cephci/pkg/logger"
	"github.com/shuchitajnn/cephci/pkg/spec/templates"
	"github.com/shuchitajnn/cephci/pkg/util"
)

// hostEntry is the per-node variable set of the host template.
type hostEntry struct {
	Hostname string
	Address  string
	Labels   []string
}

// Generator renders service spec blocks into one orchestrator spec document
// and persists it on the target node. Stateless between calls apart from the
// held node and cluster references; not safe for concurrent use.
type Generator struct {
	node    *cluster.Node
	cluster *cluster.Cluster
	log     *logger.Logger
}

// NewGenerator builds a Generator writing to node and resolving ids against c.
func NewGenerator(node *cluster.Node, c *cluster.Cluster) *Generator {
	return &Generator{
		node:    node,
		cluster: c,
		log:     logger.Get().With("component", "specgen"),
	}
}

// resolvedCopy returns a shallow copy of s with its placement resolved. The
// caller's block is never mutated.
func (g *Generator) resolvedCopy(s *ServiceSpec) (*ServiceSpec, error) {
	out := *s
	placement, err := ResolvePlacement(g.cluster, s.Placement)
	if err != nil {
		return nil, err
	}
	if placement == nil {
		placement = &Placement{}
	}
	out.Placement = placement
	return &out, nil
}

func renderWith(templateName string, data interface{}) (string, error) {
	tmpl, err := templates.Get(templateName)
	if err != nil {
		return "", err
	}
	return util.RenderTemplate(tmpl, data)
}

// renderHost produces one host entry per requested node id, in input order.
// Address and labels are attached only when the block asks for them.
func (g *Generator) renderHost(s *ServiceSpec) (string, error) {
	nodes, err := g.cluster.NodesByIDs(s.Nodes)
	if err != nil {
		return "", err
	}
	hosts := make([]hostEntry, 0, len(nodes))
	for _, n := range nodes {
		entry := hostEntry{Hostname: n.Hostname}
		if s.Address {
			entry.Address = n.IPAddress
		}
		if s.Labels {
			entry.Labels = n.Roles
		}
		hosts = append(hosts, entry)
	}
	return renderWith("host.tmpl", struct{ Hosts []hostEntry }{Hosts: hosts})
}

// renderGeneric serializes mon, mgr and the monitoring services through the
// shared template.
func (g *Generator) renderGeneric(s *ServiceSpec) (string, error) {
	resolved, err := g.resolvedCopy(s)
	if err != nil {
		return "", err
	}
	return renderWith("common_svc_template.tmpl", resolved)
}

func (g *Generator) renderOSD(s *ServiceSpec) (string, error) {
	resolved, err := g.resolvedCopy(s)
	if err != nil {
		return "", err
	}
	return renderWith("osd.tmpl", resolved)
}

func (g *Generator) renderMDS(s *ServiceSpec) (string, error) {
	resolved, err := g.resolvedCopy(s)
	if err != nil {
		return "", err
	}
	return renderWith("mds.tmpl", resolved)
}

func (g *Generator) renderNFS(s *ServiceSpec) (string, error) {
	resolved, err := g.resolvedCopy(s)
	if err != nil {
		return "", err
	}
	return renderWith("nfs.tmpl", resolved)
}

// renderRGW renders an rgw block. When the inner spec carries the
// create-cert sentinel, a self-signed certificate is provisioned with the
// first resolved host as common name, inlined into the block, and its public
// half distributed to every client- and rgw-role node's trust store.
//
// Certificate provisioning is only supported for single-host placements; the
// certificate names the first host only.
func (g *Generator) renderRGW(ctx context.Context, s *ServiceSpec) (string, error) {
	resolved, err := g.resolvedCopy(s)
	if err != nil {
		return "", err
	}

	if resolved.Spec != nil && resolved.Spec.RGWFrontendSSLCertificate == CreateCertSentinel {
		if len(resolved.Placement.Hosts) == 0 {
			return "", errors.New("rgw certificate provisioning requires an explicit host placement")
		}
		certPEM, keyPEM, err := GenerateSelfSignedCertificate(resolved.Placement.Hosts[0])
		if err != nil {
			return "", err
		}
		g.log.Debugf("generated rgw certificate for %s:\n%s", resolved.Placement.Hosts[0], certPEM)

		inner := *resolved.Spec
		inner.RGWFrontendSSLCertificate = inlineCertBlock(keyPEM + certPEM)
		resolved.Spec = &inner

		if err := DistributeTrustMaterial(ctx, g.cluster, resolved.ServiceID, certPEM); err != nil {
			return "", err
		}
	}

	return renderWith("rgw.tmpl", resolved)
}

// Render dispatches one service block to its renderer. Service types outside
// the closed set fail with *UnknownSpecError and produce no output.
func (g *Generator) Render(ctx context.Context, s *ServiceSpec) (string, error) {
	if commonServices[s.ServiceType] {
		return g.renderGeneric(s)
	}
	switch s.ServiceType {
	case ServiceTypeHost:
		return g.renderHost(s)
	case ServiceTypeOSD:
		return g.renderOSD(s)
	case ServiceTypeMDS:
		return g.renderMDS(s)
	case ServiceTypeNFS:
		return g.renderNFS(s)
	case ServiceTypeRGW:
		return g.renderRGW(ctx, s)
	}
	return "", &UnknownSpecError{ServiceType: string(s.ServiceType)}
}

// BuildDocument renders every block in input order and concatenates the
// results into one multi-document YAML string.
func (g *Generator) BuildDocument(ctx context.Context, specs []*ServiceSpec) (string, error) {
	var content string
	for _, s := range specs {
		section, err := g.Render(ctx, s)
		if err != nil {
			return "", err
		}
		content += section
	}
	g.log.Infof("spec yaml file content:\n%s", content)
	return content, nil
}

// WriteSpecFile builds the document and writes it to a uniquely named
// temporary file on the target node, returning the remote path.
func (g *Generator) WriteSpecFile(ctx context.Context, specs []*ServiceSpec) (string, error) {
	content, err := g.BuildDocument(ctx, specs)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("/tmp/cephci-spec-%s.yaml", uuid.NewString()[:8])
	if err := g.node.WriteFile(ctx, []byte(content), path, true); err != nil {
		return "", errors.Wrapf(err, "failed to write spec file %s on %s", path, g.node.Hostname)
	}
	return path, nil
}
