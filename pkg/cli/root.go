// Package cli implements the vogon command-line client.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]interface{}{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var (
		host    string
		port    int
		token   string
		output  string
		profile string
	)

	rootCmd := &cobra.Command{
		Use:           "vogon",
		Short:         "Vogon query service CLI",
		Long:          "Command-line client for the Vogon asynchronous SQL execution service.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Config file is optional.
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{
					CurrentProfile: "default",
					Profiles:       map[string]Profile{},
				}
			}

			p := cfg.ActiveProfile(profile)

			// Precedence: flag > env > profile > default.
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("VOGON_HOST"); v != "" {
					host = v
				} else if p.Host != "" {
					host = p.Host
				}
			}
			if !cmd.Flags().Changed("port") {
				if v := os.Getenv("VOGON_PORT"); v != "" {
					if n, err := strconv.Atoi(v); err == nil {
						port = n
					}
				} else if p.Port != 0 {
					port = p.Port
				}
			}
			if !cmd.Flags().Changed("token") {
				if v := os.Getenv("VOGON_AUTH_TOKEN"); v != "" {
					token = v
				} else if p.Token != "" {
					token = p.Token
				}
			}
			if !cmd.Flags().Changed("output") && p.Output != "" {
				output = p.Output
			}

			if err := validateOutputFormat(output); err != nil {
				return err
			}

			_ = cmd.Root().PersistentFlags().Set("host", host)
			_ = cmd.Root().PersistentFlags().Set("port", strconv.Itoa(port))
			_ = cmd.Root().PersistentFlags().Set("token", token)
			_ = cmd.Root().PersistentFlags().Set("output", output)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&host, "host", "", "Vogon service host")
	rootCmd.PersistentFlags().IntVar(&port, "port", 9090, "Vogon service port")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "auth token (vogon-auth-token header)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format: table or json")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "config profile to use")

	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newTablesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
