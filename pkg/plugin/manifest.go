package plugin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// manifest is the YAML shape of a sidecar descriptor. Loaders whose
// file format cannot embed a descriptor (subprocess plugins, script
// bridges) ship one next to the plugin file instead.
type manifest struct {
	ID           string   `yaml:"id"`
	ABIVersion   uint32   `yaml:"abi_version"`
	Provides     []string `yaml:"provides"`
	Priority     int      `yaml:"priority"`
	Name         string   `yaml:"name"`
	Version      string   `yaml:"version"`
	LicenseID    string   `yaml:"license_id"`
	LicenseText  string   `yaml:"license_text"`
	LicenseURL   string   `yaml:"license_url"`
	IconName     string   `yaml:"icon_name"`
	Summary      string   `yaml:"summary"`
	Description  string   `yaml:"description"`
	Category     string   `yaml:"category"`
	Authors      []string `yaml:"authors"`
	Website      string   `yaml:"website"`
	Dependencies []string `yaml:"dependencies"`
	Internal     bool     `yaml:"internal"`
	LoadOnQuery  bool     `yaml:"load_on_query"`
	BindGlobal   bool     `yaml:"bind_global"`
}

// ReadManifest parses a YAML sidecar descriptor into an Info. The
// manager never requires a manifest; this is a convenience for
// LoaderBackend implementations whose plugin files cannot embed their
// own descriptor.
//
// A manifest must carry an id. Dependency expressions are parsed
// eagerly so a malformed expression fails the query instead of the
// eventual load.
func ReadManifest(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseManifest(data)
}

// ParseManifest is ReadManifest over in-memory bytes.
func ParseManifest(data []byte) (*Info, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if m.ID == "" {
		return nil, fmt.Errorf("manifest has no id")
	}
	for _, dep := range m.Dependencies {
		if _, err := ParseDependency(dep); err != nil {
			return nil, err
		}
	}

	return NewInfoBuilder(m.ID).
		ABIVersion(m.ABIVersion).
		Provides(m.Provides...).
		Priority(m.Priority).
		Name(m.Name).
		Version(m.Version).
		LicenseID(m.LicenseID).
		LicenseText(m.LicenseText).
		LicenseURL(m.LicenseURL).
		IconName(m.IconName).
		Summary(m.Summary).
		Description(m.Description).
		Category(m.Category).
		Authors(m.Authors...).
		Website(m.Website).
		Dependencies(m.Dependencies...).
		Internal(m.Internal).
		LoadOnQuery(m.LoadOnQuery).
		BindGlobal(m.BindGlobal).
		Build(), nil
}
