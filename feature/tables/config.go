package tables

// Config holds configuration for the tables feature.
type Config struct {
	// ConfigDir overrides embedded table configurations with the YAML files
	// it contains. Empty uses the embedded ones only.
	ConfigDir string `mapstructure:"config_dir" default:""`
	// Separator joins array values inside cells.
	Separator string `mapstructure:"separator" default:", "`
}
