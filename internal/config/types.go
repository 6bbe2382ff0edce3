package config

// Config is the optional crontab config file. Every section may be omitted;
// Normalize fills in defaults.
//
// Example (YAML):
//
//	logging:
//	  level: debug
//	output:
//	  format: yaml
//	lint:
//	  compat: true
//	watch:
//	  debounce: 500ms
type Config struct {
	Logging LoggingConfig `json:"logging"`
	Output  OutputConfig  `json:"output"`
	Lint    LintConfig    `json:"lint"`
	Watch   WatchConfig   `json:"watch"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// OutputConfig selects how results are printed: "text", "json" or "yaml".
type OutputConfig struct {
	Format string `json:"format"`
}

// LintConfig controls crontab file linting.
type LintConfig struct {
	// Compat cross-checks every accepted expression against the standard
	// robfig/cron parser and warns on disagreement.
	Compat bool `json:"compat"`
	// AllowDescriptors accepts "@daily"-style lines without a warning.
	AllowDescriptors bool `json:"allow_descriptors"`
}

// WatchConfig controls `lint --watch`.
//
// Defaults (when fields are omitted/zero):
//   - debounce: "250ms"
//   - max_rate: 4 lint passes per second
type WatchConfig struct {
	// Debounce is a Go duration string (e.g. "250ms", "1s").
	Debounce string `json:"debounce,omitempty"`
	MaxRate  int    `json:"max_rate,omitempty"`
}
