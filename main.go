package main

import (
	"fmt"
	"os"

	"github.com/phototag/phototag-go/cmd"
	"github.com/phototag/phototag-go/internal/conf"
	"github.com/phototag/phototag-go/internal/datastore"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	rootCmd := cmd.RootCommand(settings)
	err = rootCmd.Execute()
	_ = datastore.CloseLogger()
	if err != nil {
		os.Exit(1)
	}
}
