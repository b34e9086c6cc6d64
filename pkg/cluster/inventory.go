package cluster

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/shuchitajnn/cephci/pkg/connector"
)

// SSHConfig carries per-node connection settings. Fields left empty fall
// back to the inventory-level defaults.
type SSHConfig struct {
	User           string        `yaml:"user,omitempty"`
	Port           int           `yaml:"port,omitempty"`
	Password       string        `yaml:"password,omitempty"`
	PrivateKeyPath string        `yaml:"privateKeyPath,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
}

// InventoryNode is one machine entry in an inventory file.
type InventoryNode struct {
	ID       string    `yaml:"id"`
	Hostname string    `yaml:"hostname"`
	Address  string    `yaml:"address"`
	Roles    []string  `yaml:"roles"`
	SSH      SSHConfig `yaml:"ssh,omitempty"`
}

// Inventory is the on-disk description of a test cluster.
type Inventory struct {
	Name  string          `yaml:"name"`
	SSH   SSHConfig       `yaml:"ssh,omitempty"`
	Nodes []InventoryNode `yaml:"nodes"`
}

// LoadInventory parses an inventory YAML file.
func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read inventory %s", path)
	}
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, errors.Wrapf(err, "failed to parse inventory %s", path)
	}
	if len(inv.Nodes) == 0 {
		return nil, errors.Errorf("inventory %s declares no nodes", path)
	}
	return &inv, nil
}

func (i *Inventory) connectionCfg(n InventoryNode) connector.ConnectionCfg {
	ssh := n.SSH
	if ssh.User == "" {
		ssh.User = i.SSH.User
	}
	if ssh.Port == 0 {
		ssh.Port = i.SSH.Port
	}
	if ssh.Password == "" {
		ssh.Password = i.SSH.Password
	}
	if ssh.PrivateKeyPath == "" {
		ssh.PrivateKeyPath = i.SSH.PrivateKeyPath
	}
	if ssh.Timeout == 0 {
		ssh.Timeout = i.SSH.Timeout
	}
	return connector.ConnectionCfg{
		Host:           n.Address,
		Port:           ssh.Port,
		User:           ssh.User,
		Password:       ssh.Password,
		PrivateKeyPath: ssh.PrivateKeyPath,
		Timeout:        ssh.Timeout,
	}
}

// Connect dials every node in the inventory and returns the assembled
// Cluster. Nodes connected so far are closed again if any dial fails.
func (i *Inventory) Connect(ctx context.Context) (*Cluster, error) {
	nodes := make([]*Node, 0, len(i.Nodes))
	for _, entry := range i.Nodes {
		conn := connector.NewSSHConnector()
		if err := conn.Connect(ctx, i.connectionCfg(entry)); err != nil {
			for _, n := range nodes {
				_ = n.Connector().Close()
			}
			return nil, errors.Wrapf(err, "failed to connect to node %s", entry.ID)
		}
		nodes = append(nodes, NewNode(entry.ID, entry.Hostname, entry.Address, entry.Roles, conn))
	}
	return New(i.Name, nodes), nil
}
