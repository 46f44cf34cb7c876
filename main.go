// Package main provides the entry point for the contrib-sql CLI application.
package main

import (
	"os"

	"fjacquet/contrib-sql/cmd/root"
	"fjacquet/contrib-sql/internal/config"
)

func main() {
	// .env values are visible to the configuration loader
	config.LoadEnv()

	os.Exit(root.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
