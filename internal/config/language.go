package config

// LanguageConfig holds per-language configuration loaded from the config
// file. This lets a translator pin the packages they maintain so plain
// "tp-lint lint sv" only touches those files.
type LanguageConfig struct {
	// Packages restricts downloads and linting to these package domains.
	Packages []string `yaml:"packages,omitempty"`

	// Skip lists package domains to exclude even when they would match.
	Skip []string `yaml:"skip,omitempty"`

	// Strict makes fuzzy entries affect the exit code for this language.
	Strict bool `yaml:"strict,omitempty"`

	// OutputDir overrides the download directory for this language.
	OutputDir string `yaml:"outputDir,omitempty"`
}

// File represents the structure of the .tp-lint.yaml configuration file.
type File struct {
	// Languages maps language codes to their specific configurations.
	// Keys are team codes as they appear on the site (e.g., "sv").
	Languages map[string]LanguageConfig `yaml:"languages,omitempty"`

	// Defaults contains configuration applied to all languages unless
	// overridden in the language-specific configuration.
	Defaults LanguageConfig `yaml:"defaults,omitempty"`
}

// GetLanguageConfig returns the configuration for a language code.
// It merges the language-specific configuration over the defaults.
func (cf *File) GetLanguageConfig(code string) LanguageConfig {
	// Start with defaults
	result := cf.Defaults

	if lc, ok := cf.Languages[code]; ok {
		if len(lc.Packages) > 0 {
			result.Packages = lc.Packages
		}
		if len(lc.Skip) > 0 {
			result.Skip = lc.Skip
		}
		if lc.Strict {
			result.Strict = true
		}
		if lc.OutputDir != "" {
			result.OutputDir = lc.OutputDir
		}
	}

	return result
}
