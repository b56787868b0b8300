package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/evtco/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh command tree so flag values do not leak between tests
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

var pair = []string{"--ev", "vw-id3-pro", "--ice", "vw-golf-15-tsi"}

func withPair(args ...string) []string {
	return append(args, pair...)
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd

	if cmd.Use != "evtco" {
		t.Errorf("Expected root command use to be 'evtco', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
	for _, name := range []string{"profile", "assumptions", "catalog", "ev", "ice", "format", "debug", "metrics-textfile", "strict"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s", name)
		}
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"calculate",
		"chart",
		"breakdown",
		"purchase",
		"sensitivity",
		"break-even",
		"vehicles",
		"validate",
		"profile",
		"whatif",
		"version",
	}

	cmd := newRootCmd().Commands()
	for _, expectedCmd := range expectedCommands {
		found := false
		for _, c := range cmd {
			if c.Name() == expectedCmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expectedCmd)
		}
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, _, err := run(t, "invalid-command")
	assert.Error(t, err)

	_, _, err = run(t, "--invalid-flag")
	assert.Error(t, err)
}

func TestCalculate_Table(t *testing.T) {
	out, _, err := run(t, withPair("calculate")...)
	require.NoError(t, err)

	assert.Contains(t, out, "VIBE SUBSCRIPTION VS. COMBUSTION LEASE")
	assert.Contains(t, out, "VW ID.3 Pro")
	assert.Contains(t, out, "VW Golf 1.5 TSI")
	assert.Contains(t, out, "RECOMMENDATION:")
}

func TestCalculate_JSON(t *testing.T) {
	out, _, err := run(t, withPair("calculate", "-f", "json", "--chart")...)
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Contains(t, report, "result")
	assert.Contains(t, report, "breakdown")
	chart, ok := report["chart"].([]any)
	require.True(t, ok)
	assert.Len(t, chart, 61)
}

func TestCalculate_HTMLToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	_, stderr, err := run(t, withPair("calculate", "-f", "html", "-o", path)...)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Report written to")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
}

func TestCalculate_Errors(t *testing.T) {
	_, _, err := run(t, "calculate", "--ev", "missing", "--ice", "vw-golf-15-tsi")
	assert.True(t, errors.Is(err, config.ErrVehicleNotFound), "got %v", err)

	_, _, err = run(t, "calculate", "--ev", "renault-zoe-r135", "--ice", "vw-golf-15-tsi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot compare")

	_, _, err = run(t, withPair("calculate", "-f", "pdf")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCalculate_StrictProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("holding_period_years: 2\nfuel_price: 0\n"), 0o644))

	_, stderr, err := run(t, withPair("calculate", "-p", path)...)
	require.NoError(t, err, "Invalid values only warn by default")
	assert.Contains(t, stderr, "fuel_price")

	_, _, err = run(t, withPair("calculate", "-p", path, "--strict")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
}

func TestCalculate_NegativeHoldingPeriod(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("holding_period_years: -1\nannual_mileage: -5000\n"), 0o644))

	out, stderr, err := run(t, withPair("calculate", "-p", path, "-f", "json")...)
	require.NoError(t, err, "Out-of-range values compute with a warning")
	assert.Contains(t, stderr, "holding_period_years")

	var report struct {
		Result struct {
			VibeAbo struct {
				MonthlyData []any `json:"monthlyData"`
			} `json:"vibeAbo"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Empty(t, report.Result.VibeAbo.MonthlyData)
}

func TestChart_YearlyCSV(t *testing.T) {
	out, _, err := run(t, withPair("chart", "--yearly", "-f", "csv")...)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 7, "header, start and five year ends")
	assert.True(t, strings.HasPrefix(lines[0], "Month,Year,Label"))

	_, _, err = run(t, withPair("chart", "-f", "html")...)
	assert.Error(t, err)
}

func TestBreakdown(t *testing.T) {
	out, _, err := run(t, withPair("breakdown")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Energy/fuel")
	assert.Contains(t, out, "Wallbox (optional)")

	out, _, err = run(t, withPair("breakdown", "-f", "json")...)
	require.NoError(t, err)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 7)
}

func TestPurchase(t *testing.T) {
	out, _, err := run(t, withPair("purchase")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Buying the VW ID.3 Pro")
	assert.Contains(t, out, "TOTALS")
	assert.Contains(t, out, "← cheapest")
}

func TestSensitivity(t *testing.T) {
	out, _, err := run(t, withPair("sensitivity", "--parameter", "annual_mileage", "--steps", "3")...)
	require.NoError(t, err)
	assert.Contains(t, out, "SENSITIVITY ANALYSIS: ANNUAL MILEAGE")

	out, _, err = run(t, withPair("sensitivity", "--parameter", "fuel_price", "--min", "1.5", "--max", "2", "--steps", "2", "-f", "json")...)
	require.NoError(t, err)
	var analysis map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	points, ok := analysis["points"].([]any)
	require.True(t, ok)
	assert.Len(t, points, 2)

	_, _, err = run(t, withPair("sensitivity", "--parameter", "wallbox")...)
	assert.Error(t, err)
}

func TestBreakEven_All(t *testing.T) {
	out, _, err := run(t, withPair("break-even")...)
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN POINTS")

	_, _, err = run(t, withPair("break-even", "--target", "fuel_price", "--min", "abc")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --min")
}

func TestVehicles(t *testing.T) {
	out, _, err := run(t, "vehicles", "-f", "json", "--class", "kompakt")
	require.NoError(t, err)

	var vehicles []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &vehicles))
	require.NotEmpty(t, vehicles)
	for _, v := range vehicles {
		assert.Equal(t, "kompakt", v["vehicleClass"])
	}

	out, _, err = run(t, "vehicles")
	require.NoError(t, err)
	assert.Contains(t, out, "vw-id3-pro")
	assert.Contains(t, out, "subscription 499 €/m")
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, withPair("validate")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Profile is valid")

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("annual_mileage: 0\ntax_bracket: 2\n"), 0o644))
	out, _, err = run(t, withPair("validate", "-p", path, "--strict")...)
	require.Error(t, err)
	assert.Contains(t, out, "annual_mileage must be positive")
	assert.Contains(t, out, "tax_bracket must be between 0 and 1")
}

func TestProfileInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")

	out, _, err := run(t, "profile", "init", "-o", path, "--ev", "tesla-model-3-rwd", "--charging", "mixed")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile written to")

	p, err := config.NewInputParser().LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "tesla-model-3-rwd", p.EVVehicleID)

	_, _, err = run(t, "profile", "init", "-o", path)
	require.Error(t, err, "Should refuse to overwrite")

	_, _, err = run(t, "profile", "init", "-o", path, "--force", "--charging", "solar")
	assert.Error(t, err)
}

func TestWhatIf(t *testing.T) {
	out, _, err := run(t, withPair("whatif", "--with", "tenant,high_mileage", "-t", "set_holding_period:years=3")...)
	require.NoError(t, err)
	assert.Contains(t, out, "WHAT-IF COMPARISON")
	assert.Contains(t, out, "tenant")
	assert.Contains(t, out, "custom")
	assert.Contains(t, out, "keep the car 3 years")

	out, _, err = run(t, withPair("whatif", "--with", "high_mileage", "-f", "json")...)
	require.NoError(t, err)
	var rows []struct {
		Scenario    string `json:"scenario"`
		DeltaVsBase string `json:"deltaVsBase"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "base", rows[0].Scenario)
	assert.Equal(t, "high_mileage", rows[1].Scenario)
	assert.False(t, strings.HasPrefix(rows[1].DeltaVsBase, "-"), "More kilometres favour the subscription")
}

func TestWhatIf_Errors(t *testing.T) {
	_, _, err := run(t, withPair("whatif")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to compare")

	_, _, err = run(t, withPair("whatif", "--with", "moon_base")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")

	_, _, err = run(t, withPair("whatif", "-t", "set_mileage:km=-5")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "variant custom")

	out, _, err := run(t, "whatif", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates:")
	assert.Contains(t, out, "set_mileage")
}

func TestMetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evtco.prom")
	_, _, err := run(t, withPair("calculate", "--metrics-textfile", path)...)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "evtco_comparisons_total")
	assert.Contains(t, string(data), `evtco_command_duration_seconds_count{command="calculate",success="true"} 1`)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "evtco dev"))
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exists.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	if !fileExists(path) {
		t.Error("Expected file to exist")
	}
	if fileExists("non_existing_file.txt") {
		t.Error("Expected non_existing_file.txt to not exist")
	}
}
