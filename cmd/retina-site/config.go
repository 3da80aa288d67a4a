package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/microsoft/retina-site/internal/docsite/config"
)

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the descriptor with defaults applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := loadDescriptor(v)
			if err != nil {
				return err
			}
			data, err := config.Marshal(d)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
