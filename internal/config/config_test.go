package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[page]
title = "Algorithm Visualizer"
icon = "static/logo.png"
layout = "centered"
initial_sidebar_state = "expanded"

[page.menu_items]
get_help = "https://example.com/help"
report_a_bug = "https://example.com/bug"
about = "# This is a header. This is an *extremely* cool app!"

[image]
test_image = "static/lenna.png"

[log]
level = "debug"
to_file = true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, DefaultFileName, sample)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Algorithm Visualizer", cfg.Page.Title)
	assert.Equal(t, LayoutCentered, cfg.Page.Layout)
	assert.Equal(t, SidebarExpanded, cfg.Page.InitialSidebarState)
	assert.Equal(t, "https://example.com/help", cfg.Page.MenuItems.GetHelp)
	assert.Equal(t, "https://example.com/bug", cfg.Page.MenuItems.ReportABug)
	assert.Contains(t, cfg.Page.MenuItems.About, "extremely")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.ToFile)
	assert.Equal(t, path, cfg.Path())

	// Keys absent from the file keep their defaults.
	assert.True(t, cfg.Log.Color)
	assert.Equal(t, Default().Window, cfg.Window)
}

func TestPathsResolveAgainstConfigDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeFile(t, dir, DefaultFileName, sample))
	require.NoError(t, err)

	assert.Equal(t, "static/lenna.png", cfg.Image.TestImage)
	assert.Equal(t, filepath.Join(dir, "static", "lenna.png"), cfg.TestImagePath())
	assert.Equal(t, filepath.Join(dir, "algo-visualizer.log"), cfg.LogFilePath())

	abs := filepath.Join(dir, "elsewhere.png")
	cfg.Image.TestImage = abs
	assert.Equal(t, abs, cfg.TestImagePath())

	assert.Equal(t, "static/test.png", Default().TestImagePath())
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrNotFound)
	require.NotNil(t, cfg)
	assert.Equal(t, Default().Page, cfg.Page)
}

func TestLoadMalformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", "[page\ntitle = ")
	cfg, err := Load(path)
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "failed to parse config bad.toml")
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"layout":  "[page]\nlayout = \"tall\"\n",
		"sidebar": "[page]\ninitial_sidebar_state = \"hidden\"\n",
		"level":   "[log]\nlevel = \"chatty\"\n",
		"window":  "[window]\nwidth = 0\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, t.TempDir(), "c.toml", content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(writeFile(t, dir, DefaultFileName, sample))
	require.NoError(t, err)

	cfg.Page.Title = "Renamed"
	cfg.Window.Width = 900
	out := filepath.Join(dir, "sub", "saved.toml")
	require.NoError(t, cfg.Save(out))
	assert.Equal(t, out, cfg.Path())

	again, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Page, again.Page)
	assert.Equal(t, cfg.Image, again.Image)
	assert.Equal(t, cfg.Log, again.Log)
	assert.Equal(t, cfg.Window, again.Window)
}

func TestSaveRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Page.Layout = "sideways"
	err := cfg.Save(filepath.Join(t.TempDir(), "c.toml"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestClone(t *testing.T) {
	cfg := Default()
	cp := cfg.Clone()
	cp.Page.Title = "changed"
	assert.Equal(t, "Algorithm Visualizer", cfg.Page.Title)
}
