package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration profiles",
	}
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigCurrentCmd())
	cmd.AddCommand(newConfigSetProfileCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), ConfigPath())
			return nil
		},
	}
}

func newConfigCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the active profile name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return fmt.Errorf("no config file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.CurrentProfile)
			return nil
		},
	}
}

func newConfigSetProfileCmd() *cobra.Command {
	var (
		host  string
		port  int
		token string
	)

	cmd := &cobra.Command{
		Use:   "set-profile <name>",
		Short: "Create or update a named profile and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				cfg = &UserConfig{Profiles: map[string]Profile{}}
			}

			name := args[0]
			p := cfg.Profiles[name]
			if cmd.Flags().Changed("host") {
				p.Host = host
			}
			if cmd.Flags().Changed("port") {
				p.Port = port
			}
			if cmd.Flags().Changed("token") {
				p.Token = token
			}
			cfg.Profiles[name] = p
			cfg.CurrentProfile = name

			if err := SaveUserConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile %q saved\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Vogon service host")
	cmd.Flags().IntVar(&port, "port", 0, "Vogon service port")
	cmd.Flags().StringVar(&token, "token", "", "auth token")

	return cmd
}
