package cli

import (
	"os"

	"github.com/gear6io/mallard/pkg/errors"
	"github.com/gear6io/mallard/server/catalog"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the resources a data directory would serve",
	Long: `Resolve a data directory and print the catalog Mallard would build
from it, without starting a server.

Shows every resource key, its detected kind, the backing entry name and
the schema route where one exists.

Examples:
  mallard catalog                         # inspect ./data
  mallard catalog --data mallard_datasample
  mallard catalog --data ./exports --items a.csv`,
	RunE: runCatalog,
}

type catalogOptions struct {
	data  string
	items []string
}

var catalogOpts = &catalogOptions{}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVar(&catalogOpts.data, "data", "./data", "directory to inspect (or mallard_datasample)")
	catalogCmd.Flags().StringArrayVar(&catalogOpts.items, "items", nil, "restrict to these entry names (repeatable)")
}

// catalogTableRows renders the catalog as table data, header row first.
func catalogTableRows(items []catalog.Item) pterm.TableData {
	rows := pterm.TableData{{"KEY", "KIND", "NAME", "SCHEMA"}}
	for _, item := range items {
		schema := "-"
		if item.Kind.HasSchema() {
			schema = catalog.SchemaKey(item.Key())
		}
		rows = append(rows, []string{item.Key(), item.Kind.String(), item.Name, schema})
	}
	return rows
}

func runCatalog(cmd *cobra.Command, args []string) error {
	dataPath, err := catalog.ResolveDataPath(catalogOpts.data)
	if err != nil {
		pterm.Error.Printfln("Cannot resolve data path: %v", err)
		return err
	}

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	cat, err := catalog.Build(dataPath, catalogOpts.items, logger)
	if err != nil {
		pterm.Error.Printfln("Cannot build catalog: %v", err)
		return err
	}

	if cat.Len() == 0 {
		pterm.Warning.Printfln("No servable items found in %s", dataPath)
		return errors.Newf(catalog.ErrEmpty, "no servable items found in %s", dataPath)
	}

	pterm.Info.Printfln("Data path: %s", dataPath)
	if err := pterm.DefaultTable.WithHasHeader().WithData(catalogTableRows(cat.Items())).Render(); err != nil {
		return err
	}
	pterm.Success.Printfln("%d resources", cat.Len())

	return nil
}
