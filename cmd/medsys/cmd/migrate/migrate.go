package migrate

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willyyyaj/medical-system/internal/app/repository/migrate"
	"github.com/willyyyaj/medical-system/internal/app/repository/sqlite"
)

var (
	sqlitePath  string
	databaseURL string
)

func init() {
	Cmd.Flags().StringVarP(&sqlitePath, "sqlite", "s", sqlite.DefaultDBPath, "source SQLite database file")
	Cmd.Flags().StringVarP(&databaseURL, "database-url", "u", "", "target PostgreSQL DSN (defaults to DATABASE_URL)")
}

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy the local SQLite data into PostgreSQL",
	Long: `Copy the local SQLite data into PostgreSQL.

- Tables are copied in dependency order so foreign keys stay valid
- The target schema is created when missing; existing rows are not deduplicated`,
	Run: func(cmd *cobra.Command, args []string) {
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
		if databaseURL == "" {
			log.Fatal("no target database: set --database-url or DATABASE_URL")
		}

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatal(err)
		}
		defer logger.Sync()

		if err := migrate.ToPostgres(context.Background(), logger, sqlitePath, databaseURL); err != nil {
			log.Fatal(err)
		}
		fmt.Println("migration finished")
	},
}
