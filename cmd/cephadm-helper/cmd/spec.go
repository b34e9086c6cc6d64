package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shuchitajnn/cephci/pkg/spec"
)

var (
	specFileFlag string
	applyFlag    bool
)

var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "Generate cephadm service specification documents",
}

var specRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render service blocks into one spec document on the installer node",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		blocks, err := spec.LoadServiceSpecs(specFileFlag)
		if err != nil {
			return err
		}

		c, admin, err := connectCluster(ctx)
		if err != nil {
			return err
		}
		defer closeCluster(c)

		generator := spec.NewGenerator(admin.Installer(), c)
		path, err := generator.WriteSpecFile(ctx, blocks)
		if err != nil {
			return err
		}
		fmt.Printf("spec file written to %s on %s\n", path, admin.Installer().Hostname)

		if applyFlag {
			if err := admin.ApplySpec(ctx, path); err != nil {
				return err
			}
			color.Green("spec %s applied", path)
		}
		return nil
	},
}

func init() {
	specRenderCmd.Flags().StringVarP(&specFileFlag, "file", "f", "", "YAML file holding the service block list (required)")
	specRenderCmd.Flags().BoolVar(&applyFlag, "apply", false, "Apply the generated spec via ceph orch apply")
	_ = specRenderCmd.MarkFlagRequired("file")

	specCmd.AddCommand(specRenderCmd)
	rootCmd.AddCommand(specCmd)
}
