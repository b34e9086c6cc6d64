package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shuchitajnn/cephci/pkg/cluster"
	"github.com/shuchitajnn/cephci/pkg/logger"
)

var (
	inventoryFlag string
	verboseFlag   bool
	logFileFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "cephadm-helper",
	Short: "cephadm-helper generates service specs and inspects ceph cluster state.",
	Long: `cephadm-helper is the driver for the ceph test-automation helpers:
it renders cephadm service specification documents from declarative YAML,
pushes them to the installer node, and runs read-only cluster-state queries
used for assertions in tests.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logOpts := logger.DefaultOptions()
		if verboseFlag {
			logOpts.ConsoleLevel = logger.DebugLevel
		}
		if logFileFlag != "" {
			logOpts.FileOutput = true
			logOpts.LogFilePath = logFileFlag
		}
		logger.Init(logOpts)
		return nil
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	defer func() { _ = logger.SyncGlobal() }()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inventoryFlag, "inventory", "i", "inventory.yaml", "Path to the cluster inventory file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also log to this file (JSON, rotated)")
}

// connectCluster dials every inventory node and returns the cluster with its
// admin handle. The caller closes the returned cluster's connections.
func connectCluster(ctx context.Context) (*cluster.Cluster, *cluster.Admin, error) {
	inv, err := cluster.LoadInventory(inventoryFlag)
	if err != nil {
		return nil, nil, err
	}
	c, err := inv.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	admin, err := cluster.NewAdmin(c)
	if err != nil {
		closeCluster(c)
		return nil, nil, err
	}
	return c, admin, nil
}

func closeCluster(c *cluster.Cluster) {
	for _, n := range c.Nodes() {
		_ = n.Connector().Close()
	}
}
