package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willyyyaj/medical-system/internal/app"
	"github.com/willyyyaj/medical-system/internal/app/fhir"
)

var bundleDir string

func init() {
	Cmd.Flags().StringVarP(&bundleDir, "dir", "d", "", "directory containing FHIR bundle JSON files")

	Cmd.MarkFlagRequired("dir")
}

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import FHIR patient bundles into the database",
	Long: `Import FHIR patient bundles into the database.

- Reads every .json bundle in the directory and registers its Patient resources
- Resources without a usable name or birth date are skipped`,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := app.InitializeStore()
		if err != nil {
			log.Fatal(err)
		}
		defer store.Close()

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Sync()

		importer := fhir.NewImporter(store, logger)
		imported, err := importer.ImportDir(context.Background(), bundleDir)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("import finished, %d patients imported\n", imported)
	},
}
