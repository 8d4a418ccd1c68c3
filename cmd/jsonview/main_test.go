package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rgonek/jsonview/jsonview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{"data":[{"Path":"/docs","Published":"44581","Tags":"[\"a\",\"b\"]"},{"Path":"/faq"}]}`

func TestPresetConfig(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cfg, err := presetConfig(presetDefault)
		require.NoError(t, err)
		assert.Equal(t, jsonview.Config{}, cfg)
	})

	t.Run("empty defaults to default", func(t *testing.T) {
		cfg, err := presetConfig("")
		require.NoError(t, err)
		assert.Equal(t, jsonview.Config{}, cfg)
	})

	t.Run("strict", func(t *testing.T) {
		cfg, err := presetConfig(presetStrict)
		require.NoError(t, err)
		assert.Equal(t, jsonview.MissingCellError, cfg.MissingCells)
		assert.Equal(t, jsonview.ResolutionStrict, cfg.ResolutionMode)
		assert.Equal(t, jsonview.ListDetectArray, cfg.ListDetection)
	})

	t.Run("plain", func(t *testing.T) {
		cfg, err := presetConfig(" PLAIN ")
		require.NoError(t, err)
		assert.Equal(t, jsonview.DateDetectNone, cfg.DateDetection)
		assert.Equal(t, jsonview.ListDetectNone, cfg.ListDetection)
	})
}

func TestPresetConfigInvalid(t *testing.T) {
	_, err := presetConfig("unknown")
	require.Error(t, err)
	assert.Equal(t, `unknown preset "unknown" (allowed: default, strict, plain)`, err.Error())
}

func TestResolveConfigLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jsonview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headingLevel: 3\nlistDetection: all\nmediaWidth: 640\n"), 0o644))

	cfg, err := resolveConfig(options{configPath: path, preset: presetStrict, sanitize: true})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.HeadingLevel)
	assert.Equal(t, 640, cfg.MediaWidth)
	assert.Equal(t, jsonview.ListDetectAll, cfg.ListDetection)
	assert.Equal(t, jsonview.MissingCellError, cfg.MissingCells)
	assert.True(t, cfg.Sanitize)
}

func TestResolveConfigBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("headingLevel: [\n"), 0o644))

	_, err := resolveConfig(options{configPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")

	_, err = resolveConfig(options{configPath: filepath.Join(dir, "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func executeCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunFromStdin(t *testing.T) {
	stdout, stderr, err := executeCmd(t, samplePayload, "-")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(stdout))
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("tbody > tr").Length())
	assert.Equal(t, "/docs", doc.Find("div.link > a").First().AttrOr("href", ""))
	assert.Equal(t, 2, doc.Find("div.list li").Length())

	assert.Contains(t, stderr, "missing_cell")
}

func TestRunWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "index.json")
	output := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(input, []byte(samplePayload), 0o644))

	stdout, stderr, err := executeCmd(t, "", "--page", "-o", output, input)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "wrote HTML")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	page := string(data)
	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>"+input+"</title>")
	assert.Contains(t, page, `<div class="date">Thu, 20 Jan 2022 00:00:00 GMT</div>`)
}

func TestRunStrictPresetFailsOnMissingCell(t *testing.T) {
	stdout, stderr, err := executeCmd(t, samplePayload, "--preset", presetStrict, "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, jsonview.ErrUnrenderableCell)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "render failed")
}

func TestRunMalformedPayload(t *testing.T) {
	_, _, err := executeCmd(t, `"not a table"`, "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, jsonview.ErrMalformedPayload)
}

func TestRunRequiresInput(t *testing.T) {
	_, _, err := executeCmd(t, "")
	require.Error(t, err)
}

func TestRunVerboseLogsSheets(t *testing.T) {
	_, stderr, err := executeCmd(t, samplePayload, "--verbose", "-")
	require.NoError(t, err)
	assert.Contains(t, stderr, "sheet rendered")
	assert.Contains(t, stderr, "payload loaded")
}
