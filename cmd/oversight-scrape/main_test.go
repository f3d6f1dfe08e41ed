package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/oversight-scraper/internal/config"
)

func TestApplyCLIOverrides(t *testing.T) {
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"-o", "out/data.js",
		"-f", "JS",
		"--timeout", "5s",
		"--fallback-pages", "4",
	}))

	cfg := config.DefaultConfig()
	applyCLIOverrides(cmd, cfg)

	require.Equal(t, "out/data.js", cfg.Output.Path)
	require.Equal(t, config.FormatJS, cfg.Output.Format)
	require.Equal(t, 5*time.Second, cfg.Fetcher.RequestTimeout)
	require.Equal(t, 4, cfg.Source.FallbackPages)
	// untouched flags keep loaded values
	require.Equal(t, config.DefaultConfig().Source.BaseURL, cfg.Source.BaseURL)
	require.Equal(t, config.DefaultConfig().Fetcher.UserAgent, cfg.Fetcher.UserAgent)
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "oversight-scrape "+config.Version+"\n", out.String())
}

func TestConfigCommand(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config"})

	require.NoError(t, cmd.Execute())
	require.True(t, strings.Contains(out.String(), "fallback_pages: 13"), out.String())
	require.True(t, strings.Contains(out.String(), "format: json"), out.String())
}

func TestOutputName(t *testing.T) {
	require.Equal(t, "stdout", outputName(""))
	require.Equal(t, "data.json", outputName("data.json"))
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "--base-url", "https://mirror.example.com/dashboard", "--fallback-pages", "7", "-f", "js"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "base_url: https://mirror.example.com/dashboard")
	require.Contains(t, out.String(), "fallback_pages: 7")
	require.Contains(t, out.String(), "format: js")
}

func TestConfigCommandValidates(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"config", "--format", "csv"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config")
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
