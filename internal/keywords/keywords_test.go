package keywords

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test_keywords.db"), func(msg string) { t.Log(msg) })
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenWithDirectory(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()
	assert.FileExists(t, filepath.Join(dir, dbFileName))
}

func TestAddGetRemove(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Add("a.jpg", "shade"))
	require.NoError(t, s.Add("a.jpg", "green"))
	require.NoError(t, s.Add("a.jpg", "green")) // duplicate is a no-op
	require.NoError(t, s.Add("b.jpg", "green"))

	kw, err := s.Get("a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"green", "shade"}, kw)

	imgs, err := s.Images("green")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, imgs)

	require.NoError(t, s.Remove("a.jpg", "green"))
	kw, err = s.Get("a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []string{"shade"}, kw)

	imgs, err = s.Images("green")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg"}, imgs)
}

func TestEmptyArgumentsRejected(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.Add("", "x"))
	assert.Error(t, s.Add("a.jpg", ""))
	assert.Error(t, s.Remove("", "x"))
	assert.Error(t, s.AddMany("a.jpg", nil))
	assert.Error(t, s.RemoveAllForImage(""))
	assert.Error(t, s.DeleteOrphanedKey(""))
}

func TestGetUnknownImage(t *testing.T) {
	s := openTestStore(t)
	kw, err := s.Get("missing.jpg")
	require.NoError(t, err)
	assert.Empty(t, kw)
}

func TestAddManyAndAll(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.AddMany("a.jpg", []string{"fern", "", "shade"}))
	require.NoError(t, s.AddMany("b.jpg", []string{"fern"}))

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []KeywordWithCount{{Name: "fern", Count: 2}, {Name: "shade", Count: 1}}, all)
}

func TestRemoveAllForImage(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.AddMany("a.jpg", []string{"fern", "shade"}))
	require.NoError(t, s.Add("b.jpg", "fern"))

	require.NoError(t, s.RemoveAllForImage("a.jpg"))
	require.NoError(t, s.RemoveAllForImage("never-tagged.jpg"))

	kw, err := s.Get("a.jpg")
	require.NoError(t, err)
	assert.Empty(t, kw)

	all, err := s.All()
	require.NoError(t, err)
	assert.Equal(t, []KeywordWithCount{{Name: "fern", Count: 1}}, all)

	urls, err := s.ImageURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{"b.jpg"}, urls)
}

func TestDeleteOrphanedKey(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Add("a.jpg", "fern"))
	require.NoError(t, s.DeleteOrphanedKey("fern"))
	require.NoError(t, s.DeleteOrphanedKey("never-existed"))

	imgs, err := s.Images("fern")
	require.NoError(t, err)
	assert.Empty(t, imgs)
}
