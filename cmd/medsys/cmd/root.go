package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/willyyyaj/medical-system/cmd/medsys/cmd/export"
	"github.com/willyyyaj/medical-system/cmd/medsys/cmd/ingest"
	"github.com/willyyyaj/medical-system/cmd/medsys/cmd/migrate"
	"github.com/willyyyaj/medical-system/cmd/medsys/cmd/serve"
	"github.com/willyyyaj/medical-system/cmd/medsys/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "medsys",
	Short: "Clinic backend serving patients, doctors, visits and AI summaries",
	Long: `Clinic backend serving patients, doctors, visits and AI summaries.
- serve runs the HTTP API with WebSocket notifications
- import loads FHIR patient bundles into the database
- export writes appointments and prescriptions to an Excel workbook
- migrate copies the local SQLite data into PostgreSQL`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(ingest.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
