package texpecting

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenRepo_Filename(t *testing.T) {
	repo := GoldenRepo{Dir: "testdata"}
	assert.Equal(t,
		filepath.Join("testdata", t.Name()+StdSuffix),
		repo.Filename(t, ""))
	assert.Equal(t,
		filepath.Join("testdata", t.Name(), "stderr"+StdSuffix),
		repo.Filename(t, "stderr"))
	assert.Equal(t,
		filepath.Join("testdata", t.Name(), "stderr.texpect"),
		repo.Filename(t, "stderr.texpect"))

	repo.Suffix = NoSuffix
	assert.Equal(t,
		filepath.Join("testdata", t.Name()),
		repo.Filename(t, ""))
}

func TestConfig_compare(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		GoldenFileName: GoldenRepo{Dir: dir}.Filename,
	}
	goldenFile := cfg.GoldenFileName(t, "")
	require.NoError(t,
		os.WriteFile(goldenFile, []byte("pid <\\d+> done\n"), 0666))

	t.Run("match", func(t *testing.T) {
		err := cfg.compare(t, "", strings.NewReader("pid 4711 done\n"))
		assert.NoError(t, err)
	})
	t.Run("mismatch", func(t *testing.T) {
		err := cfg.compare(t, "", strings.NewReader("pid none done\n"))
		assert.Error(t, err)
	})
	t.Run("missing golden file", func(t *testing.T) {
		err := cfg.compare(t, "other", strings.NewReader("pid 4711 done\n"))
		assert.Error(t, err)
	})
}

func TestConfig_compare_keepsOutOnFailure(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		GoldenFileName: GoldenRepo{Dir: dir}.Filename,
		KeepOut:        true,
	}
	goldenFile := cfg.GoldenFileName(t, "")
	require.NoError(t, os.WriteFile(goldenFile, []byte("expected\n"), 0666))

	err := cfg.compare(t, "", strings.NewReader("something else\n"))
	require.Error(t, err)
	glob, err := filepath.Glob(filepath.Join(dir, t.Name()+".*"))
	require.NoError(t, err)
	var kept []string
	for _, f := range glob {
		if f != goldenFile {
			kept = append(kept, f)
		}
	}
	require.Len(t, kept, 1, "failing compare must keep the out text")
	content, err := os.ReadFile(kept[0])
	require.NoError(t, err)
	assert.Equal(t, "something else\n", string(content))
}

func TestFatal_example(t *testing.T) {
	const out = `Jun 29 20:58:11.112 INFO  [thread1] create localization dir
Jun 29 20:58:11.113 INFO  [thread2] load state
Jun 29 20:58:11.125 DEBUG [thread1] clearing maps
`
	// Recorded once with: Record(t, "", strings.NewReader(out)), then the
	// timestamps were replaced by fragments.
	Fatal(t, "", strings.NewReader(out))
}
