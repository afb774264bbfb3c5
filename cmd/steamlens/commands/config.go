package commands

import (
	"log/slog"
	"os"
	"time"

	"steamlens/lib/cliutil"
	"steamlens/lib/configutil"
	"steamlens/lib/llm"
)

type OllamaConfig struct {
	BaseUrl        string `json:"base_url"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Config struct {
	Ollama   OllamaConfig `json:"ollama"`
	Synonyms string       `json:"synonyms"`
}

// readConfig loads steamlens.json5 (+ .local override) from the cwd.
// A missing file falls back to defaults that match a stock local
// ollama install.
func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("steamlens.json5")
	if os.IsNotExist(err) {
		slog.Info("no steamlens.json5 found, using defaults")
	} else if err != nil {
		cliutil.Fatal("failed to read config", err)
	}

	if cfg.Ollama.BaseUrl == "" {
		cfg.Ollama.BaseUrl = "http://localhost:11434"
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = "llama3"
	}
	if cfg.Synonyms == "" {
		cfg.Synonyms = "synonyms.json5"
	}
	return cfg
}

func (c Config) newModelClient() llm.Client {
	return llm.NewOllama(llm.OllamaOptions{
		BaseUrl: c.Ollama.BaseUrl,
		Model:   c.Ollama.Model,
		Timeout: time.Duration(c.Ollama.TimeoutSeconds) * time.Second,
	})
}
