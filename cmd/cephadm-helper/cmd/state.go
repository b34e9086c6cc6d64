package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/shuchitajnn/cephci/pkg/state"
)

var extraCommandsFlag []string

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Read-only cluster state queries",
}

var stateHostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List hosts deployed in the cluster",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, admin, err := connectCluster(cmd.Context())
		if err != nil {
			return err
		}
		defer closeCluster(c)

		hosts, err := state.DeployedHosts(cmd.Context(), admin)
		if err != nil {
			return err
		}
		for _, h := range hosts {
			fmt.Println(h)
		}
		return nil
	},
}

var stateDaemonsCmd = &cobra.Command{
	Use:   "daemons",
	Short: "Show daemons per host",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, admin, err := connectCluster(cmd.Context())
		if err != nil {
			return err
		}
		defer closeCluster(c)

		daemonMap, err := state.HostDaemonMap(cmd.Context(), admin)
		if err != nil {
			return err
		}
		hosts, err := state.DeployedHosts(cmd.Context(), admin)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Host", "Daemons"})
		for _, host := range hosts {
			table.Append([]string{host, strings.Join(daemonMap[host], ", ")})
		}
		table.Render()
		return nil
	},
}

var stateOSDsCmd = &cobra.Command{
	Use:   "osds",
	Short: "Show OSD ids per host",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, admin, err := connectCluster(cmd.Context())
		if err != nil {
			return err
		}
		defer closeCluster(c)

		osdMap, err := state.HostOSDMap(cmd.Context(), admin)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Host", "OSDs"})
		for host, ids := range osdMap {
			strs := make([]string, 0, len(ids))
			for _, id := range ids {
				strs = append(strs, strconv.Itoa(id))
			}
			table.Append([]string{host, strings.Join(strs, ", ")})
		}
		table.Render()
		return nil
	},
}

var stateSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Log the output of the fixed cluster inspection command set",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, admin, err := connectCluster(cmd.Context())
		if err != nil {
			return err
		}
		defer closeCluster(c)

		if err := state.Snapshot(cmd.Context(), admin, extraCommandsFlag...); err != nil {
			return err
		}

		health, err := state.ClusterHealth(cmd.Context(), admin)
		if err != nil {
			return err
		}
		if health.OK() {
			color.Green("cluster status: %s", health.Status)
		} else {
			color.Red("cluster status: %s (%d checks)", health.Status, len(health.Checks))
		}
		return nil
	},
}

func init() {
	stateSnapshotCmd.Flags().StringArrayVar(&extraCommandsFlag, "command", nil, "Extra command to run alongside the fixed set (repeatable)")

	stateCmd.AddCommand(stateHostsCmd, stateDaemonsCmd, stateOSDsCmd, stateSnapshotCmd)
	rootCmd.AddCommand(stateCmd)
}
