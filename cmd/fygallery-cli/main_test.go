package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fygallery/internal/keywords"
	"fygallery/internal/service"
)

type env struct {
	dbPath   string
	config   string
	manifest string
	dir      string
}

func openKeywords(dbPath string, logger func(string)) (*service.KeywordService, error) {
	store, err := keywords.Open(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return service.NewKeywordService(store, logger), nil
}

// setupEnv creates a temporary database, an empty config and a small
// manifest-backed collection.
func setupEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dbPath:   filepath.Join(dir, "keywords.db"),
		config:   filepath.Join(dir, "config.toml"),
		manifest: filepath.Join(dir, "gallery.yaml"),
		dir:      dir,
	}
	manifest := `images:
  - id: 1
    url: fern.jpg
    title: Fern
    category: nature
    keywords: [green]
  - id: 2
    url: tower.jpg
    title: Tower
    category: [architecture, nature]
  - id: 3
    url: fox.jpg
    title: Red Fox
    category: animals
    keywords: [red]
`
	require.NoError(t, os.WriteFile(e.manifest, []byte(manifest), 0644))
	return e
}

func (e env) args(args ...string) []string {
	return append([]string{"--config", e.config, "--dbpath", e.dbPath}, args...)
}

// executeCommandC executes a cobra command and captures its output.
func executeCommandC(root *cobra.Command, args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, err := executeCommandC(NewRootCmd(openKeywords), args...)
	require.NoError(t, err, "stdout: %s, stderr: %s", stdout, stderr)
	return stdout
}

func TestRootHelp(t *testing.T) {
	stdout := run(t, "--help")
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "fygallery-cli [command]")
	assert.Contains(t, stdout, "keywords")
	assert.Contains(t, stdout, "catalog")
}

func TestKeywordsAllEmpty(t *testing.T) {
	e := setupEnv(t)
	stdout := run(t, e.args("keywords", "all")...)
	assert.Contains(t, stdout, "No keywords found in the database.")
}

func TestKeywordsAddListRemove(t *testing.T) {
	e := setupEnv(t)
	img := filepath.Join(e.dir, "fern.jpg")

	stdout := run(t, e.args("keywords", "add", img, "moss", "shade")...)
	assert.Contains(t, stdout, "Added keyword 'moss' to "+img)
	assert.Contains(t, stdout, "Added keyword 'shade' to "+img)

	stdout = run(t, e.args("keywords", "list", img)...)
	assert.Equal(t, "moss, shade", strings.TrimSpace(stdout))

	stdout = run(t, e.args("kw", "remove", img, "moss")...)
	assert.Contains(t, stdout, "Removed keyword 'moss' from "+img)

	stdout = run(t, e.args("keywords", "list", img)...)
	assert.Equal(t, "shade", strings.TrimSpace(stdout))
}

func TestKeywordsAddRemoteURLKept(t *testing.T) {
	e := setupEnv(t)
	url := "https://example.com/a.jpg"
	run(t, e.args("keywords", "add", url, "sky")...)

	stdout := run(t, e.args("keywords", "find", "sky")...)
	assert.Equal(t, url, strings.TrimSpace(stdout))
}

func TestKeywordsFindAndAll(t *testing.T) {
	e := setupEnv(t)
	a := filepath.Join(e.dir, "a.jpg")
	b := filepath.Join(e.dir, "b.jpg")
	run(t, e.args("keywords", "add", a, "tagA")...)
	run(t, e.args("keywords", "add", b, "tagA", "tagB")...)

	stdout := run(t, e.args("keywords", "all")...)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, []string{"tagA (2)", "tagB (1)"}, lines)

	stdout = run(t, e.args("keywords", "find", "tagB")...)
	assert.Equal(t, b, strings.TrimSpace(stdout))

	stdout = run(t, e.args("keywords", "find", "nope")...)
	assert.Contains(t, stdout, "No images found for keyword 'nope'.")
}

func TestKeywordsNormalizeAndReplace(t *testing.T) {
	e := setupEnv(t)
	a := filepath.Join(e.dir, "a.jpg")
	run(t, e.args("keywords", "add", a, "Sunset")...)

	run(t, e.args("keywords", "normalize")...)
	stdout := run(t, e.args("keywords", "list", a)...)
	assert.Equal(t, "sunset", strings.TrimSpace(stdout))

	stdout = run(t, e.args("keywords", "replace", "sunset", "dusk")...)
	assert.Contains(t, stdout, "Replaced keyword 'sunset' with 'dusk'")
	stdout = run(t, e.args("keywords", "all")...)
	assert.Equal(t, "dusk (1)", strings.TrimSpace(stdout))
}

func TestKeywordsArgsValidation(t *testing.T) {
	e := setupEnv(t)
	_, _, err := executeCommandC(NewRootCmd(openKeywords), e.args("keywords", "add", "only-image")...)
	assert.Error(t, err)
	_, _, err = executeCommandC(NewRootCmd(openKeywords), e.args("keywords", "replace", "same", "same")...)
	assert.Error(t, err)
}

func TestKeywordsClean(t *testing.T) {
	e := setupEnv(t)
	inside := filepath.Join(e.dir, "fern.jpg")
	outside := filepath.Join(e.dir, "gone.jpg")
	run(t, e.args("keywords", "add", inside, "keep")...)
	run(t, e.args("keywords", "add", outside, "drop")...)

	stdout := run(t, e.args("--manifest", e.manifest, "keywords", "clean")...)
	assert.Contains(t, stdout, "Cleaned 1 images and 0 orphaned keywords.")

	stdout = run(t, e.args("keywords", "all")...)
	assert.Equal(t, "keep (1)", strings.TrimSpace(stdout))
}

func TestCatalogList(t *testing.T) {
	e := setupEnv(t)

	stdout := run(t, e.args("--manifest", e.manifest, "catalog", "list")...)
	assert.Contains(t, stdout, "1\tFern\tNature\t"+filepath.Join(e.dir, "fern.jpg"))
	assert.Contains(t, stdout, "2\tTower\tArchitecture, Nature")
	assert.Contains(t, stdout, "Page 1 of 1 (3 images)")

	stdout = run(t, e.args("--manifest", e.manifest, "catalog", "list", "--category", "nature")...)
	assert.Contains(t, stdout, "Fern")
	assert.Contains(t, stdout, "Tower")
	assert.NotContains(t, stdout, "Red Fox")

	stdout = run(t, e.args("--manifest", e.manifest, "catalog", "list", "-s", "RED")...)
	assert.Contains(t, stdout, "Red Fox")
	assert.Contains(t, stdout, "Page 1 of 1 (1 images)")

	stdout = run(t, e.args("--manifest", e.manifest, "catalog", "list", "-s", "zebra")...)
	assert.Contains(t, stdout, "No images found.")
	assert.Contains(t, stdout, "Page 1 of 1 (0 images)")
}

func TestCatalogListPaging(t *testing.T) {
	e := setupEnv(t)

	stdout := run(t, e.args("--manifest", e.manifest, "catalog", "list", "-n", "2", "-p", "2")...)
	assert.Contains(t, stdout, "Red Fox")
	assert.NotContains(t, stdout, "Fern")
	assert.Contains(t, stdout, "Page 2 of 2 (3 images)")

	stdout = run(t, e.args("--manifest", e.manifest, "catalog", "list", "-n", "2", "-p", "9")...)
	assert.Contains(t, stdout, "Page 2 of 2")
}

func TestCatalogMergesStoredKeywords(t *testing.T) {
	e := setupEnv(t)
	run(t, e.args("keywords", "add", filepath.Join(e.dir, "tower.jpg"), "stone")...)

	stdout := run(t, e.args("--manifest", e.manifest, "catalog", "list", "-s", "stone")...)
	assert.Contains(t, stdout, "Tower")
}

func TestCatalogStats(t *testing.T) {
	e := setupEnv(t)
	stdout := run(t, e.args("--manifest", e.manifest, "catalog", "stats")...)
	assert.Contains(t, stdout, "Images: 3")
	assert.Contains(t, stdout, "Keywords: 2")
	assert.Contains(t, stdout, "  Animals: 1\n  Architecture: 1\n  Nature: 2\n")
}

func TestCatalogWithoutSource(t *testing.T) {
	e := setupEnv(t)
	_, _, err := executeCommandC(NewRootCmd(openKeywords), e.args("catalog", "stats")...)
	assert.ErrorIs(t, err, service.ErrNoSource)
}
