package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
summarizer:
  style: bullets
quiz:
  question_count: 6
store:
  type: redis
log:
  mode: prod
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv(RedisAddrEnv, "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bullets", cfg.Summarizer.Style)
	assert.Equal(t, "medium", cfg.Summarizer.Length)
	assert.Equal(t, 3, cfg.Summarizer.ChunkSentences)
	assert.Equal(t, 0, cfg.Summarizer.ChunkOverlap)
	assert.Equal(t, 6, cfg.Quiz.QuestionCount)
	assert.Equal(t, 10, cfg.Keywords.Count)
	assert.Equal(t, InputConfig{MinRawChars: 20, MinCleanChars: 50, MaxChars: 5000}, cfg.Input)
	require.NotNil(t, cfg.Store.Redis)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "studyquiz:session:", cfg.Store.Redis.KeyPrefix)
	assert.Equal(t, 86400, cfg.Store.Redis.TTLSecs)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "prod", cfg.Log.Mode)
}

func TestLoadRedisAddrFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: redis\n"), 0o644))
	t.Setenv(RedisAddrEnv, "redis.internal:6380")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6380", cfg.Store.Redis.Addr)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quiz: [unclosed"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Summarizer.Length = "long"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadDefaultWritesUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, path, err := LoadDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "studyquiz", "config.yaml"), path)
	assert.Equal(t, defaultConfig(), cfg)
	assert.FileExists(t, path)
}

func TestLoadChunkSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "summarizer:\n  chunk_sentences: 4\n  chunk_overlap: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Summarizer.ChunkSentences)
	assert.Equal(t, 1, cfg.Summarizer.ChunkOverlap)

	require.NoError(t, os.WriteFile(path, []byte("summarizer:\n  chunk_sentences: 2\n  chunk_overlap: 5\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Summarizer.ChunkSentences)
	assert.Equal(t, 0, cfg.Summarizer.ChunkOverlap)
}
