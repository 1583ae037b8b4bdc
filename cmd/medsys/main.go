package main

import (
	"fmt"
	"os"

	"github.com/willyyyaj/medical-system/cmd/medsys/cmd"
	"github.com/willyyyaj/medical-system/internal/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
