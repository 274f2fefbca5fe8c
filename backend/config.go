package main

import "sync"

type Config struct {
	// AnalysisMode streams an analysis snapshot (lock lines, gap highlights,
	// fragments) over /ws/analysis after every applied move.
	AnalysisMode bool `json:"analysis_mode"`
	LogMoves     bool `json:"log_moves"`
	// Move-ranking knobs. Centrality and jitter only shape tie-breaking
	// between otherwise equal candidates.
	AiCentralityWeight float64             `json:"ai_centrality_weight"`
	AiJitter           float64             `json:"ai_jitter"`
	Extension          ExtensionHeuristics `json:"extension"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AnalysisMode:       true,
		LogMoves:           false,
		AiCentralityWeight: 1.0,
		AiJitter:           0.25,
		Extension:          DefaultExtensionHeuristics(),
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
