package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mallard",
	Short: "Serve a directory of data files as a paginated REST API",
	Long: `Mallard exposes a directory of heterogeneous data files (CSV, TSV,
JSON, Parquet and Parquet shard folders) as read-only, paginated HTTP
resources, with schema introspection for every tabular source.

Point it at a directory and every supported file becomes an endpoint:

  mallard serve --data ./data
  mallard serve --data mallard_datasample --port 9000
  mallard catalog --data ./data`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
