package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/elephantlog"
	main "github.com/fwojciec/elephantlog/cmd/elephantlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"db": "test.db"},
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"run", "sample", "stats"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ParsesRunFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Vars{"db": "default.db"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"run", "urls.txt",
		"--mode", "compare", "--compare-with", "openai",
		"--start-year", "2010", "--no-date-filter",
		"--delay", "0.5", "--ignore-robots", "--metrics-file", "m.prom",
	})
	require.NoError(t, err)

	assert.Equal(t, "urls.txt", cli.Run.Input)
	assert.Equal(t, main.ModeCompare, cli.Run.Flags.Mode)
	assert.Equal(t, "openai", cli.Run.Flags.CompareWith)
	assert.Equal(t, 2010, cli.Run.Flags.StartYear)
	assert.True(t, cli.Run.Flags.NoDateFilter)
	assert.True(t, cli.Run.IgnoreRobots)
	assert.Equal(t, "default.db", cli.Run.DB)
	assert.Equal(t, "output", cli.Run.Flags.Output)
	assert.Equal(t, "m.prom", cli.Run.MetricsFile)
	assert.InDelta(t, 0.5, cli.Run.Delay, 1e-9)
}

func TestCLI_RunInputDefaultsToStdin(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Vars{"db": "default.db"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"run"})
	require.NoError(t, err)

	assert.Equal(t, "-", cli.Run.Input)
	assert.Equal(t, main.ModeRules, cli.Run.Flags.Mode)
	assert.Less(t, cli.Run.Delay, 0.0)
}

func TestCLI_RejectsUnknownMode(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Vars{"db": "default.db"})
	require.NoError(t, err)

	_, err = parser.Parse([]string{"run", "--mode", "magic"})

	require.Error(t, err)
}

func TestExtractFlags_Apply(t *testing.T) {
	t.Parallel()

	t.Run("overrides years and the date filter", func(t *testing.T) {
		t.Parallel()

		flags := main.ExtractFlags{StartYear: 2015, EndYear: 2020, NoDateFilter: true}

		cfg, err := flags.Apply(elephantlog.DefaultConfig())

		require.NoError(t, err)
		assert.Equal(t, 2015, cfg.StartYear)
		assert.Equal(t, 2020, cfg.EndYear)
		assert.False(t, cfg.FilterByDate)
	})

	t.Run("keeps configured values when flags are unset", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.ExtractFlags{}.Apply(elephantlog.DefaultConfig())

		require.NoError(t, err)
		assert.Equal(t, elephantlog.DefaultConfig(), cfg)
	})

	t.Run("rejects inverted bounds", func(t *testing.T) {
		t.Parallel()

		_, err := main.ExtractFlags{StartYear: 2024, EndYear: 2001}.Apply(elephantlog.DefaultConfig())

		require.Error(t, err)
		assert.Equal(t, elephantlog.ECONFIG, elephantlog.ErrorCode(err))
	})
}

func TestRunCmd_Config(t *testing.T) {
	t.Parallel()

	t.Run("sets the delay in seconds", func(t *testing.T) {
		t.Parallel()

		cmd := &main.RunCmd{Delay: 1.5}

		cfg, err := cmd.Config(elephantlog.DefaultConfig())

		require.NoError(t, err)
		assert.Equal(t, 1500*time.Millisecond, cfg.RequestDelay)
	})

	t.Run("negative delay keeps the configured value", func(t *testing.T) {
		t.Parallel()

		cmd := &main.RunCmd{Delay: -1}

		cfg, err := cmd.Config(elephantlog.DefaultConfig())

		require.NoError(t, err)
		assert.Equal(t, elephantlog.DefaultRequestDelay, cfg.RequestDelay)
	})
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"run", "sample", "stats"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "Flags:")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
