// Command sentineld drives a networked system-monitor display: it provisions
// Wi-Fi through a captive portal, polls a remote server for system metrics,
// and renders them on the attached screen.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/sentinel/sentinel-display/internal/config"
	"github.com/sentinel/sentinel-display/internal/settings"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var settingsPath string

	root := &cobra.Command{
		Use:           "sentineld",
		Short:         "Networked system-monitor display appliance",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := settings.Load(settingsPath)
			if err != nil {
				return err
			}
			return run(set)
		},
	}
	root.PersistentFlags().StringVar(&settingsPath, "settings", settings.DefaultPath, "settings file path")

	root.AddCommand(newShowConfigCmd(&settingsPath))
	root.AddCommand(newResetCmd(&settingsPath))
	return root
}

// newShowConfigCmd prints the persisted provisioning record. Secrets are
// omitted.
func newShowConfigCmd(settingsPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show-config",
		Short: "Print the provisioning record and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := settings.Load(*settingsPath)
			if err != nil {
				return err
			}
			cfg, ok := config.NewStore(set.ConfigPath).Load()
			if !ok {
				fmt.Println("not provisioned")
				return nil
			}
			fmt.Printf("wifi:   %s\n", cfg.SSID)
			fmt.Printf("server: %s\n", cfg.ServerEndpoint())
			fmt.Printf("device: %s\n", cfg.DeviceID)
			return nil
		},
	}
}

// newResetCmd clears the provisioning record so the next start enters
// access-point mode.
func newResetCmd(settingsPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the provisioning record and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := settings.Load(*settingsPath)
			if err != nil {
				return err
			}
			if err := config.NewStore(set.ConfigPath).Clear(); err != nil {
				return err
			}
			fmt.Println("provisioning record cleared")
			return nil
		},
	}
}
