package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/microsoft/retina-site/internal/docsite/build"
)

func newCheckCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the descriptor and check every link without writing output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			d, registry, err := loadDescriptor(v)
			if err != nil {
				return err
			}

			site, err := build.NewBuilder(d, registry, log, build.Options{}).Site(cmd.Context())
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderCheckReport(site))
			if v.GetBool("strict") && len(site.Report.Warnings) > 0 {
				return fmt.Errorf("%d link warning(s) in strict mode", len(site.Report.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().Bool("strict", false, "Fail when any link warning is reported")
	_ = v.BindPFlag("strict", cmd.Flags().Lookup("strict"))

	return cmd
}
