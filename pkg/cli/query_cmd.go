package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	vogon "github.com/shubhiks/vogon-go"
)

func newQueryCmd() *cobra.Command {
	var (
		pollInterval time.Duration
		queryTimeout time.Duration
		maxRows      int
		params       []string
		scheme       string
	)

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a SQL query and print the result rows",
		Long: "Submits the query to the Vogon service, polls until the job reaches a " +
			"terminal state, and prints the retrieved rows. Named %(key)s placeholders " +
			"are filled from --param key=value flags.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromFlags(cmd.Root().PersistentFlags(), scheme, pollInterval, queryTimeout, maxRows)

			parameters, err := parseParams(params)
			if err != nil {
				return err
			}

			conn, err := vogon.Connect(cfg)
			if err != nil {
				return err
			}
			defer conn.Close() //nolint:errcheck

			cursor, err := conn.Execute(cmd.Context(), args[0], parameters)
			if err != nil {
				return err
			}

			description, err := cursor.Description()
			if err != nil {
				return err
			}
			rows, err := cursor.FetchAll()
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), getOutputFormat(cmd), description, rows)
		},
	}

	cmd.Flags().DurationVar(&pollInterval, "poll-interval", vogon.DefaultPollInterval, "wait between status checks (min 45s)")
	cmd.Flags().DurationVar(&queryTimeout, "timeout", vogon.DefaultQueryTimeout, "overall job budget (min 2m)")
	cmd.Flags().IntVar(&maxRows, "max-rows", vogon.DefaultMaxRows, "maximum rows to retrieve")
	cmd.Flags().StringArrayVar(&params, "param", nil, "named query parameter as key=value (repeatable)")
	cmd.Flags().StringVar(&scheme, "scheme", "", "service scheme: https (default) or http")

	return cmd
}

func configFromFlags(flags *pflag.FlagSet, scheme string, pollInterval, queryTimeout time.Duration, maxRows int) *vogon.Config {
	host, _ := flags.GetString("host")
	port, _ := flags.GetInt("port")
	token, _ := flags.GetString("token")

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return &vogon.Config{
		Host:         host,
		Port:         port,
		Scheme:       scheme,
		AuthToken:    token,
		PollInterval: pollInterval,
		QueryTimeout: queryTimeout,
		MaxRows:      maxRows,
		RaiseOnError: true,
		Logger:       logger,
	}
}

// parseParams turns repeated key=value flags into a parameter map. Values
// are passed through as strings except for bools and numbers, which are
// converted so they escape unquoted.
func parseParams(pairs []string) (map[string]interface{}, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	parameters := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", pair)
		}
		parameters[key] = coerceParam(value)
	}
	return parameters, nil
}

func coerceParam(value string) interface{} {
	switch value {
	case "true", "TRUE":
		return true
	case "false", "FALSE":
		return false
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
