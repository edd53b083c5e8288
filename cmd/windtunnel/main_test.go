package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/windtunnel/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	configFile, preset, stlFile = "", "", ""
	cmd := &cobra.Command{Use: "test"}
	addScenarioFlags(cmd)
	for k, v := range flags {
		require.NoError(t, cmd.Flags().Set(k, v))
	}
	return cmd
}

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := buildConfig(scenarioCmd(t, nil))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestBuildConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"flow": {"velocity": 12, "density": 1.1}}`), 0644))

	cmd := scenarioCmd(t, map[string]string{
		"preset":  "truck",
		"config":  path,
		"density": "1.3",
		"pos":     "1,0,2",
	})
	cfg, err := buildConfig(cmd)
	require.NoError(t, err)

	// preset tunnel, file velocity, flag density
	assert.Equal(t, 40.0, cfg.Tunnel.Length)
	assert.Equal(t, 12.0, cfg.Flow.Velocity)
	assert.Equal(t, 1.3, cfg.Flow.Density)
	assert.Equal(t, [3]float64{1, 0, 2}, cfg.ObjectPosition)
}

func TestBuildConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
	}{
		{"unknown preset", map[string]string{"preset": "blimp"}},
		{"short position", map[string]string{"pos": "1,2"}},
		{"short scale", map[string]string{"scale": "1"}},
		{"negative length", map[string]string{"length": "-3"}},
		{"missing file", map[string]string{"config": "/nonexistent/cfg.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildConfig(scenarioCmd(t, tt.flags))
			assert.Error(t, err)
		})
	}
}

func TestBuildSessionPlacesObject(t *testing.T) {
	dir := t.TempDir()
	dataDir = dir
	stl := filepath.Join(dir, "tetra.stl")
	tetra := "solid t\n" +
		"facet normal 0 0 -1\nouter loop\nvertex 0 0 0\nvertex 0 1 0\nvertex 1 0 0\nendloop\nendfacet\n" +
		"facet normal 0 -1 0\nouter loop\nvertex 0 0 0\nvertex 1 0 0\nvertex 0 0 1\nendloop\nendfacet\n" +
		"facet normal -1 0 0\nouter loop\nvertex 0 0 0\nvertex 0 0 1\nvertex 0 1 0\nendloop\nendfacet\n" +
		"facet normal 1 1 1\nouter loop\nvertex 1 0 0\nvertex 0 1 0\nvertex 0 0 1\nendloop\nendfacet\n" +
		"endsolid t\n"
	require.NoError(t, os.WriteFile(stl, []byte(tetra), 0644))

	cmd := scenarioCmd(t, map[string]string{"pos": "2,0,1", "scale": "2,2,2"})
	stlFile = stl
	rotate = nil
	integrator = "rk4"

	s, err := buildSession(cmd)
	require.NoError(t, err)
	require.NotNil(t, s.Object)
	assert.Equal(t, [3]float64{2, 0, 1}, s.Config.ObjectPosition)
	b := s.Object.Bounds()
	assert.InDelta(t, 1.0, b[0], 1e-6)
	assert.InDelta(t, 3.0, b[1], 1e-6)
	assert.InDelta(t, 1.0, b[4], 1e-6)
	assert.InDelta(t, 3.0, b[5], 1e-6)
}

func TestParseRotation(t *testing.T) {
	axis, deg, err := parseRotation("Z:90")
	require.NoError(t, err)
	assert.Equal(t, "z", axis)
	assert.Equal(t, 90.0, deg)

	for _, bad := range []string{"z", "z:ninety"} {
		_, _, err := parseRotation(bad)
		assert.Error(t, err, bad)
	}
}
