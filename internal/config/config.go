package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SummarizerConfig selects the default summary style and length.
type SummarizerConfig struct {
	Style  string `yaml:"style"`
	Length string `yaml:"length"`
	// ChunkSentences and ChunkOverlap shape the paragraphs of the detailed style.
	ChunkSentences int `yaml:"chunk_sentences"`
	ChunkOverlap   int `yaml:"chunk_overlap"`
}

// QuizConfig configures quiz generation.
type QuizConfig struct {
	QuestionCount int `yaml:"question_count"`
}

// KeywordsConfig configures keyword extraction.
type KeywordsConfig struct {
	Count int `yaml:"count"`
}

// InputConfig bounds the study text accepted by the pipeline.
type InputConfig struct {
	MinRawChars   int `yaml:"min_raw_chars"`
	MinCleanChars int `yaml:"min_clean_chars"`
	MaxChars      int `yaml:"max_chars"`
}

// RedisConfig contains connection details for the redis session store.
type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
	TTLSecs   int    `yaml:"ttl_secs"`
}

// StoreConfig selects and configures the quiz session store.
type StoreConfig struct {
	Type  string       `yaml:"type"`
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr             string `yaml:"addr"`
	ReadTimeoutSecs  int    `yaml:"read_timeout_secs"`
	WriteTimeoutSecs int    `yaml:"write_timeout_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Quiz       QuizConfig       `yaml:"quiz"`
	Keywords   KeywordsConfig   `yaml:"keywords"`
	Input      InputConfig      `yaml:"input"`
	Store      StoreConfig      `yaml:"store"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// RedisAddrEnv overrides store.redis.addr when set.
const RedisAddrEnv = "STUDYQUIZ_REDIS_ADDR"

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/studyquiz/config.yaml.
// If neither exists, it writes defaults to ~/.config/studyquiz/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "studyquiz", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Summarizer: SummarizerConfig{Style: "paragraphs", Length: "medium", ChunkSentences: 3},
		Quiz:       QuizConfig{QuestionCount: 10},
		Keywords:   KeywordsConfig{Count: 10},
		Input:      InputConfig{MinRawChars: 20, MinCleanChars: 50, MaxChars: 5000},
		Store:      StoreConfig{Type: "memory"},
		Server:     ServerConfig{Addr: ":8080", ReadTimeoutSecs: 15, WriteTimeoutSecs: 15},
		Log:        LogConfig{Mode: "dev"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := defaultConfig()
	if cfg.Summarizer.Style == "" {
		cfg.Summarizer.Style = def.Summarizer.Style
	}
	if cfg.Summarizer.Length == "" {
		cfg.Summarizer.Length = def.Summarizer.Length
	}
	if cfg.Summarizer.ChunkSentences <= 0 {
		cfg.Summarizer.ChunkSentences = def.Summarizer.ChunkSentences
	}
	if cfg.Summarizer.ChunkOverlap < 0 || cfg.Summarizer.ChunkOverlap >= cfg.Summarizer.ChunkSentences {
		cfg.Summarizer.ChunkOverlap = 0
	}
	if cfg.Quiz.QuestionCount <= 0 {
		cfg.Quiz.QuestionCount = def.Quiz.QuestionCount
	}
	if cfg.Keywords.Count <= 0 {
		cfg.Keywords.Count = def.Keywords.Count
	}
	if cfg.Input.MinRawChars == 0 {
		cfg.Input.MinRawChars = def.Input.MinRawChars
	}
	if cfg.Input.MinCleanChars == 0 {
		cfg.Input.MinCleanChars = def.Input.MinCleanChars
	}
	if cfg.Input.MaxChars == 0 {
		cfg.Input.MaxChars = def.Input.MaxChars
	}
	if cfg.Store.Type == "" {
		cfg.Store.Type = def.Store.Type
	}
	if cfg.Store.Type == "redis" {
		if cfg.Store.Redis == nil {
			cfg.Store.Redis = &RedisConfig{}
		}
		if cfg.Store.Redis.Addr == "" {
			cfg.Store.Redis.Addr = "localhost:6379"
		}
		if cfg.Store.Redis.KeyPrefix == "" {
			cfg.Store.Redis.KeyPrefix = "studyquiz:session:"
		}
		if cfg.Store.Redis.TTLSecs == 0 {
			cfg.Store.Redis.TTLSecs = 24 * 60 * 60
		}
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Server.ReadTimeoutSecs == 0 {
		cfg.Server.ReadTimeoutSecs = def.Server.ReadTimeoutSecs
	}
	if cfg.Server.WriteTimeoutSecs == 0 {
		cfg.Server.WriteTimeoutSecs = def.Server.WriteTimeoutSecs
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = def.Log.Mode
	}
}

func applyEnv(cfg *AppConfig) {
	addr := strings.TrimSpace(os.Getenv(RedisAddrEnv))
	if addr == "" || cfg.Store.Type != "redis" {
		return
	}
	if cfg.Store.Redis == nil {
		cfg.Store.Redis = &RedisConfig{}
	}
	cfg.Store.Redis.Addr = addr
}
