package tables

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gamedata-wiki/core/table"

	"gopkg.in/yaml.v3"
)

//go:embed configs/*.yaml
var embedded embed.FS

var displayTypes = map[table.DisplayType]bool{
	"":                true,
	table.TypeText:    true,
	table.TypeNumber:  true,
	table.TypeBoolean: true,
	table.TypeImage:   true,
}

// ParseConfig decodes and validates one table configuration document.
func ParseConfig(data []byte) (table.Config, error) {
	var cfg table.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return table.Config{}, err
	}
	if cfg.Dataset == "" {
		return table.Config{}, fmt.Errorf("config without dataset")
	}
	for i, f := range cfg.Fields {
		if f.KeyPath == "" {
			return table.Config{}, fmt.Errorf("%s: field %d without keyPath", cfg.Dataset, i)
		}
		if !displayTypes[f.Display.Type] {
			return table.Config{}, fmt.Errorf("%s: field %s has unknown display type %q", cfg.Dataset, f.KeyPath, f.Display.Type)
		}
	}
	return cfg, nil
}

// LoadConfigs returns the embedded table configurations, replaced by the
// ones found in dir when dir is not empty.
func LoadConfigs(dir string) (map[string]table.Config, error) {
	configs, err := loadConfigFS(embedded, "configs")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return configs, nil
	}

	overrides, err := loadConfigFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	for name, cfg := range overrides {
		configs[name] = cfg
	}
	return configs, nil
}

func loadConfigFS(fsys fs.FS, dir string) (map[string]table.Config, error) {
	paths, err := fs.Glob(fsys, path.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}

	configs := make(map[string]table.Config, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		cfg, err := ParseConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
		configs[cfg.Dataset] = cfg
	}
	return configs, nil
}
