package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orglens/orglens/internal/config"
	"github.com/orglens/orglens/internal/core/enrich"
)

func TestCollectNamesDedupes(t *testing.T) {
	names, err := collectNames([]string{"Acme", "  acme ", "Beta"}, "")
	require.NoError(t, err)
	require.Equal(t, []string{"Acme", "Beta"}, names)
}

func TestCollectNamesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("Acme\n# comment\n\nBeta\n"), 0o600))

	names, err := collectNames([]string{"Gamma"}, path)
	require.NoError(t, err)
	require.Equal(t, []string{"Gamma", "Acme", "Beta"}, names)
}

func TestCollectNamesMissingFile(t *testing.T) {
	_, err := collectNames(nil, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestBuildProbeDisabledByDefault(t *testing.T) {
	probe := buildProbe(config.DANSConfig{})
	require.IsType(t, enrich.NoopProbe{}, probe)
}

func TestBuildProbeRDAP(t *testing.T) {
	probe := buildProbe(config.DANSConfig{RDAPProbe: config.RDAPProbeConfig{
		Enabled:  true,
		Suffixes: []string{"com"},
	}})
	require.IsType(t, &enrich.RDAPProbe{}, probe)
}
