package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/microsoft/retina-site/internal/docsite/build"
)

func newBuildCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
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

			b := build.NewBuilder(d, registry, log, build.Options{
				OutDir:      v.GetString("out"),
				Concurrency: v.GetInt("concurrency"),
			})
			res, err := b.Build(cmd.Context())
			if err != nil {
				return fmt.Errorf("build failed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderBuildSummary(d.Title, res))
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", "Output directory (default: build/ next to the descriptor)")
	cmd.Flags().Int("concurrency", build.DefaultConcurrency, "Maximum pages rendered at once")
	_ = v.BindPFlag("out", cmd.Flags().Lookup("out"))
	_ = v.BindPFlag("concurrency", cmd.Flags().Lookup("concurrency"))

	return cmd
}
