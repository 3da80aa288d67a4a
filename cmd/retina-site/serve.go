package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/microsoft/retina-site/internal/docsite/build"
	"github.com/microsoft/retina-site/internal/docsite/server"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site locally and rebuild on changes",
		Long: `The serve command loads the site, renders pages on request and watches the
descriptor, docs and static directories. Changes trigger a rebuild; a failed
rebuild keeps serving the previous site.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			// The descriptor is reloaded on every rebuild so edits to it apply too.
			load := func(ctx context.Context) (*build.Site, error) {
				d, registry, err := loadDescriptor(v)
				if err != nil {
					return nil, err
				}
				return build.NewBuilder(d, registry, log, build.Options{}).Site(ctx)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(load, log, server.Options{
				Addr:     v.GetString("addr"),
				Debounce: v.GetDuration("debounce"),
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "localhost:3000", "Address to listen on")
	cmd.Flags().Duration("debounce", server.DefaultDebounce, "Quiet period before a rebuild")
	_ = v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("debounce", cmd.Flags().Lookup("debounce"))

	return cmd
}
