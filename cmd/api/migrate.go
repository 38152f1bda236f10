package main

import (
	"github.com/spf13/cobra"
)

var migrateWithSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema of the configured store",
	Long:  "Creates the tables of the configured store. With --seed the sample catalog is loaded into an empty store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, repos, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer repos.Close()
		return migrateAndSeed(cmd.Context(), repos, migrateWithSeed)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample catalog into an empty store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, repos, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer repos.Close()
		return migrateAndSeed(cmd.Context(), repos, true)
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateWithSeed, "seed", false, "Also load the sample catalog")
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
