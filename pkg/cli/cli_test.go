package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vogon "github.com/shubhiks/vogon-go"
)

func TestParseParams(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		params, err := parseParams(nil)
		require.NoError(t, err)
		assert.Nil(t, params)
	})

	t.Run("typed_values", func(t *testing.T) {
		params, err := parseParams([]string{"name=O'Brien", "n=10", "ratio=0.5", "active=true"})
		require.NoError(t, err)
		assert.Equal(t, "O'Brien", params["name"])
		assert.Equal(t, int64(10), params["n"])
		assert.Equal(t, 0.5, params["ratio"])
		assert.Equal(t, true, params["active"])
	})

	t.Run("value_with_equals", func(t *testing.T) {
		params, err := parseParams([]string{"expr=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", params["expr"])
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := parseParams([]string{"noequals"})
		require.Error(t, err)
		_, err = parseParams([]string{"=value"})
		require.Error(t, err)
	})
}

func TestValidateOutputFormat(t *testing.T) {
	require.NoError(t, validateOutputFormat(""))
	require.NoError(t, validateOutputFormat("table"))
	require.NoError(t, validateOutputFormat("json"))
	require.Error(t, validateOutputFormat("xml"))
}

func TestPrintResult(t *testing.T) {
	description := []vogon.Column{
		{Name: "customer_id", Type: vogon.TypeString, Nullable: true},
		{Name: "net_bid", Type: vogon.TypeNumber, Nullable: false},
	}
	rows := [][]interface{}{
		{"a", 1.5},
		{nil, 2.0},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, "table", description, rows))

		out := buf.String()
		assert.Contains(t, out, "customer_id")
		assert.Contains(t, out, "net_bid")
		assert.Contains(t, out, "NULL")
		assert.Contains(t, out, "(2 rows)")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, "json", description, rows))

		var records []map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "a", records[0]["customer_id"])
		assert.Equal(t, 1.5, records[0]["net_bid"])
		assert.Nil(t, records[1]["customer_id"])
	})
}

func TestUserConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("missing_file", func(t *testing.T) {
		_, err := LoadUserConfig()
		require.Error(t, err)
	})

	t.Run("save_and_load", func(t *testing.T) {
		cfg := &UserConfig{
			CurrentProfile: "prod",
			Profiles: map[string]Profile{
				"prod": {Host: "vogon.reports.mn", Port: 9090, Token: "tok"},
			},
		}
		require.NoError(t, SaveUserConfig(cfg))

		loaded, err := LoadUserConfig()
		require.NoError(t, err)
		assert.Equal(t, "prod", loaded.CurrentProfile)
		assert.Equal(t, "vogon.reports.mn", loaded.Profiles["prod"].Host)
	})

	t.Run("active_profile", func(t *testing.T) {
		cfg := &UserConfig{
			CurrentProfile: "prod",
			Profiles: map[string]Profile{
				"prod":    {Host: "prod.example.com"},
				"staging": {Host: "staging.example.com"},
			},
		}
		assert.Equal(t, "prod.example.com", cfg.ActiveProfile("").Host)
		assert.Equal(t, "staging.example.com", cfg.ActiveProfile("staging").Host)
		assert.Equal(t, Profile{}, cfg.ActiveProfile("missing"))
	})
}

func TestTablesCmd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	runCLI := func(t *testing.T, args ...string) (string, error) {
		t.Helper()
		root := newRootCmd()
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		root.SetArgs(args)
		err := root.Execute()
		return buf.String(), err
	}

	t.Run("list", func(t *testing.T) {
		out, err := runCLI(t, "tables")
		require.NoError(t, err)
		assert.Contains(t, out, "cm.rts_customer_stats")
		assert.Contains(t, out, "cm.rts_portfolio_stats")
	})

	t.Run("describe", func(t *testing.T) {
		out, err := runCLI(t, "tables", "cm.rts_customer_stats")
		require.NoError(t, err)
		assert.Contains(t, out, "customer_id")
		assert.Contains(t, out, "string")
	})

	t.Run("describe_json", func(t *testing.T) {
		out, err := runCLI(t, "tables", "cm.rts_customer_stats", "-o", "json")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))
	})

	t.Run("unknown_table", func(t *testing.T) {
		_, err := runCLI(t, "tables", "no.such_table")
		require.Error(t, err)
	})
}

func TestQueryCmd_Validation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VOGON_HOST", "vogon.example.com")

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"query", "SELECT 1", "--poll-interval", "1s"})

	err := root.Execute()
	require.Error(t, err)

	var cfgErr *vogon.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestVersionCmd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "vogon")
}
