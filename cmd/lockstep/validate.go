package main

import (
	"fmt"

	"github.com/aretw0/lockstep/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration and topology for consistency",
	Long: `Loads the startup parameters and builds the parking configuration without
connecting to a broker, reporting every wiring error found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runValidate(cmd); err != nil {
			for _, e := range validator.Errors(err) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
			}
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("transport", "", "Transport to check the parameters for (mqtt, redis, memory)")
	validateCmd.Flags().Int("total-spaces", 0, "Number of parking spaces")
}

func runValidate(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	app, eng, err := offlineApp(cfg)
	if err != nil {
		return err
	}
	_, err = eng.Init(app.Starts()...)
	return err
}
