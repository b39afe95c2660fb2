package main

import (
	"os"

	"github.com/GoogleCloudPlatform/csv-schema-enricher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
