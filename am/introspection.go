package am

import "os"

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceUser        ConfigSource = "user"        // ~/.stoich/am.toml
	SourceProject     ConfigSource = "project"     // am.toml found from the working directory up
	SourceEnvironment ConfigSource = "environment" // STOICH_* env vars
)

// SourceInfo describes one configuration file candidate
type SourceInfo struct {
	Source ConfigSource `json:"source"`
	Path   string       `json:"path"`
	Exists bool         `json:"exists"`
}

// Sources lists configuration files in merge order (later overrides
// earlier). The project entry is omitted when no am.toml is found.
func Sources() []SourceInfo {
	var sources []SourceInfo
	if p := UserConfigPath(); p != "" {
		sources = append(sources, SourceInfo{Source: SourceUser, Path: p, Exists: fileExists(p)})
	}
	if p := findProjectConfig(); p != "" {
		sources = append(sources, SourceInfo{Source: SourceProject, Path: p, Exists: true})
	}
	return sources
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
