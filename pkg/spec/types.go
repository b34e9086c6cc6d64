// Package spec renders cephadm service specification documents. A caller
// supplies a declarative list of per-service blocks; the generator resolves
// logical node ids against the cluster topology, renders each block through
// its service template and writes the concatenated YAML document to the
// installer node.
package spec

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ServiceType identifies the kind of service a spec block deploys. The set
// is closed; unknown values are rejected when the block is parsed.
type ServiceType string

const (
	ServiceTypeHost         ServiceType = "host"
	ServiceTypeMon          ServiceType = "mon"
	ServiceTypeMgr          ServiceType = "mgr"
	ServiceTypeAlertmanager ServiceType = "alertmanager"
	ServiceTypeCrash        ServiceType = "crash"
	ServiceTypeGrafana      ServiceType = "grafana"
	ServiceTypeNodeExporter ServiceType = "node-exporter"
	ServiceTypePrometheus   ServiceType = "prometheus"
	ServiceTypeOSD          ServiceType = "osd"
	ServiceTypeMDS          ServiceType = "mds"
	ServiceTypeNFS          ServiceType = "nfs"
	ServiceTypeRGW          ServiceType = "rgw"
)

// commonServices deploy through the shared generic template.
var commonServices = map[ServiceType]bool{
	ServiceTypeMon:          true,
	ServiceTypeMgr:          true,
	ServiceTypeAlertmanager: true,
	ServiceTypeCrash:        true,
	ServiceTypeGrafana:      true,
	ServiceTypeNodeExporter: true,
	ServiceTypePrometheus:   true,
}

// UnknownSpecError reports a service type with no renderer.
type UnknownSpecError struct {
	ServiceType string
}

func (e *UnknownSpecError) Error() string {
	return fmt.Sprintf("unknown service spec found - %q", e.ServiceType)
}

// ParseServiceType validates a raw service_type string.
func ParseServiceType(s string) (ServiceType, error) {
	t := ServiceType(s)
	switch t {
	case ServiceTypeHost, ServiceTypeMon, ServiceTypeMgr, ServiceTypeAlertmanager,
		ServiceTypeCrash, ServiceTypeGrafana, ServiceTypeNodeExporter,
		ServiceTypePrometheus, ServiceTypeOSD, ServiceTypeMDS, ServiceTypeNFS,
		ServiceTypeRGW:
		return t, nil
	}
	return "", &UnknownSpecError{ServiceType: s}
}

// UnmarshalYAML rejects unknown service types at parse time.
func (t *ServiceType) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseServiceType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Placement selects the hosts a service runs on: an explicit node-id or host
// list, a pattern, or a count, optionally narrowed by label.
type Placement struct {
	Nodes       []string `yaml:"nodes,omitempty"`
	Hosts       []string `yaml:"hosts,omitempty"`
	HostPattern string   `yaml:"host_pattern,omitempty"`
	Count       int      `yaml:"count,omitempty"`
	Label       string   `yaml:"label,omitempty"`
}

// DataDevices describes which devices an OSD service consumes.
type DataDevices struct {
	All   bool     `yaml:"all,omitempty"`
	Paths []string `yaml:"paths,omitempty"`
}

// InnerSpec carries the nested `spec:` section used by nfs and rgw blocks.
type InnerSpec struct {
	Pool                      string `yaml:"pool,omitempty"`
	Namespace                 string `yaml:"namespace,omitempty"`
	RGWFrontendPort           int    `yaml:"rgw_frontend_port,omitempty"`
	RGWRealm                  string `yaml:"rgw_realm,omitempty"`
	RGWZone                   string `yaml:"rgw_zone,omitempty"`
	SSL                       bool   `yaml:"ssl,omitempty"`
	RGWFrontendSSLCertificate string `yaml:"rgw_frontend_ssl_certificate,omitempty"`
}

// CreateCertSentinel in RGWFrontendSSLCertificate asks the generator to
// provision a self-signed certificate instead of using supplied PEM content.
const CreateCertSentinel = "create-cert"

// ServiceSpec is one declarative service block. Address, Labels and Nodes
// apply to host blocks only; DataDevices and Encrypted to osd blocks; Spec to
// nfs and rgw blocks.
type ServiceSpec struct {
	ServiceType ServiceType  `yaml:"service_type"`
	ServiceID   string       `yaml:"service_id,omitempty"`
	Unmanaged   bool         `yaml:"unmanaged,omitempty"`
	Address     bool         `yaml:"address,omitempty"`
	Labels      bool         `yaml:"labels,omitempty"`
	Nodes       []string     `yaml:"nodes,omitempty"`
	Placement   *Placement   `yaml:"placement,omitempty"`
	DataDevices *DataDevices `yaml:"data_devices,omitempty"`
	Encrypted   bool         `yaml:"encrypted,omitempty"`
	Spec        *InnerSpec   `yaml:"spec,omitempty"`
}

// LoadServiceSpecs parses a YAML file holding a list of service blocks.
func LoadServiceSpecs(path string) ([]*ServiceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read service specs %s", path)
	}
	var specs []*ServiceSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, errors.Wrapf(err, "failed to parse service specs %s", path)
	}
	return specs, nil
}
