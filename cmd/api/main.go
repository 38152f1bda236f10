package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title           JobFlix API
// @version         1.0
// @description     Job marketplace backend: listings, companies, applications, bookmarks and profiles.
// @host            localhost:5000
// @BasePath        /api
var rootCmd = &cobra.Command{
	Use:   "jobflix-api",
	Short: "JobFlix job marketplace backend",
	Long:  "JobFlix serves job listings, companies, applications, bookmarks and user profiles over a JSON API.",
	// Running the binary without a subcommand starts the server.
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
