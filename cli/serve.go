package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gear6io/mallard/server"
	"github.com/gear6io/mallard/server/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server over a data directory",
	Long: `Start the Mallard server and serve every supported file and folder
under the data directory as a REST resource.

Flags override values loaded from the config file. The reserved data
path "mallard_datasample" serves a bundled sample dataset.

Examples:
  mallard serve                                # serve ./data on the default port
  mallard serve --data ./exports --port 9000
  mallard serve --config mallard-server.yml
  mallard serve --data ./exports --items a.csv --items b.json
  mallard serve --no-schema                    # disable *_columnnames resources`,
	RunE: runServe,
}

type serveOptions struct {
	configFile string
	data       string
	items      []string
	address    string
	port       int
	noSchema   bool
}

var serveOpts = &serveOptions{}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveOpts.configFile, "config", "c", "", "path to a YAML config file")
	serveCmd.Flags().StringVar(&serveOpts.data, "data", "", "directory to serve (or mallard_datasample)")
	serveCmd.Flags().StringArrayVar(&serveOpts.items, "items", nil, "restrict serving to these entry names (repeatable)")
	serveCmd.Flags().StringVar(&serveOpts.address, "address", "", "listen address")
	serveCmd.Flags().IntVar(&serveOpts.port, "port", 0, "listen port")
	serveCmd.Flags().BoolVar(&serveOpts.noSchema, "no-schema", false, "disable schema introspection endpoints")
}

// applyServeOverrides layers the set flags over the loaded config.
func applyServeOverrides(cfg *config.Config, opts *serveOptions) {
	if opts.data != "" {
		cfg.Data.Path = opts.data
	}
	if len(opts.items) > 0 {
		cfg.Data.Items = opts.items
	}
	if opts.address != "" {
		cfg.HTTP.Address = opts.address
	}
	if opts.port > 0 {
		cfg.HTTP.Port = opts.port
	}
	if opts.noSchema {
		cfg.Data.SchemaEndpoints = false
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	if serveOpts.configFile != "" {
		loaded, err := config.LoadConfig(serveOpts.configFile)
		if err != nil {
			pterm.Error.Printfln("Failed to load config: %v", err)
			return err
		}
		cfg = loaded
	} else {
		cfg = config.LoadDefaultConfig()
	}

	applyServeOverrides(cfg, serveOpts)

	if err := cfg.Validate(); err != nil {
		pterm.Error.Printfln("Invalid configuration: %v", err)
		return err
	}

	logger, err := config.SetupLogger(cfg)
	if err != nil {
		pterm.Error.Printfln("Failed to setup logger: %v", err)
		return err
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create server")
		pterm.Error.Printfln("Failed to create server: %v", err)
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("Shutting down Mallard server...")
		cancel()
	}()

	if err := srv.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("Server failed")
		return err
	}

	pterm.Success.Printfln("Serving %d resources from %s at http://%s",
		srv.Catalog().Len(), srv.Catalog().DataPath(), cfg.GetHTTPAddr())

	<-ctx.Done()

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
		return err
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
