package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "location-scout",
	Short: "A scouting tool for photographers: locations, light and reports",
	Long: `Location Scout manages shooting locations grouped into projects,
computes sunrise, sunset and golden-hour windows per location, and exports
paginated PDF scouting reports and shareable client proposals.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
