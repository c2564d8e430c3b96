package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/schoolstock/internal/inventory"
)

// yamlModuleFile is the top-level YAML structure for module files.
type yamlModuleFile struct {
	Module yamlModule `yaml:"module"`
}

// yamlModule is the YAML representation of a module.
type yamlModule struct {
	ID          string               `yaml:"id"`
	Title       string               `yaml:"title"`
	Kind        string               `yaml:"kind"`
	KeySet      string               `yaml:"key_set"`
	Keys        []string             `yaml:"keys"`
	Labels      map[string]string    `yaml:"labels"`
	ReportTitle string               `yaml:"report_title"`
	FileStem    string               `yaml:"file_stem"`
	Profiles    map[string]yamlItems `yaml:"profiles"`
	Rooms       []yamlRoom           `yaml:"rooms"`
	Summary     yamlSummary          `yaml:"summary"`
}

type yamlItems map[string]inventory.ItemState

type yamlRoom struct {
	Name    string    `yaml:"name"`
	Profile string    `yaml:"profile"`
	Items   yamlItems `yaml:"items"`
}

type yamlSummary struct {
	Classes []string          `yaml:"classes"`
	Items   []yamlSummaryItem `yaml:"items"`
}

type yamlSummaryItem struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

// keySets maps key_set names to their ordered key subsets.
var keySets = map[string][]inventory.ItemKey{
	"primary":   inventory.PrimaryKeys,
	"secondary": inventory.SecondaryKeys,
	"lab":       inventory.LabKeys,
}

// LoadModuleFromFile reads and validates a single module YAML file.
//
// Precondition: path must point to a module YAML file.
// Postcondition: Returns a validated Module or a non-nil error.
func LoadModuleFromFile(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module file %s: %w", path, err)
	}
	return LoadModuleFromBytes(data)
}

// LoadModuleFromBytes parses and validates a module from YAML bytes.
//
// Postcondition: Returns a validated Module or a non-nil error.
func LoadModuleFromBytes(data []byte) (*Module, error) {
	var file yamlModuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing module YAML: %w", err)
	}

	m, err := convertYAMLModule(file.Module)
	if err != nil {
		return nil, fmt.Errorf("converting module %q: %w", file.Module.ID, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating module: %w", err)
	}
	return m, nil
}

// LoadModulesFromDir loads every *.yaml / *.yml file in dir, in file name order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns at least one validated Module or an error.
func LoadModulesFromDir(dir string) ([]*Module, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading module directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var modules []*Module
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		m, err := LoadModuleFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading module from %s: %w", name, err)
		}
		modules = append(modules, m)
	}

	if len(modules) == 0 {
		return nil, fmt.Errorf("no module files found in %s", dir)
	}
	return modules, nil
}

// convertYAMLModule converts the parsed YAML structures into domain types,
// resolving key sets, labels and room profiles.
func convertYAMLModule(ym yamlModule) (*Module, error) {
	kind, err := inventory.ParseKind(ym.Kind)
	if err != nil {
		return nil, err
	}

	keys, err := resolveKeys(ym.KeySet, ym.Keys)
	if err != nil {
		return nil, err
	}

	overrides := make(map[inventory.ItemKey]string, len(ym.Labels))
	for name, label := range ym.Labels {
		k, err := inventory.ParseItemKey(name)
		if err != nil {
			return nil, fmt.Errorf("labels: %w", err)
		}
		overrides[k] = label
	}

	profiles := make(map[string]map[inventory.ItemKey]inventory.ItemState, len(ym.Profiles))
	for name, items := range ym.Profiles {
		converted, err := convertItems(items)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[name] = converted
	}

	m := &Module{
		ID:          ym.ID,
		Title:       ym.Title,
		Kind:        kind,
		Keys:        keys,
		Labels:      inventory.Labels(keys, overrides),
		ReportTitle: ym.ReportTitle,
		FileStem:    ym.FileStem,
	}
	if m.ReportTitle == "" {
		m.ReportTitle = ym.Title + " Inventory"
	}
	if m.FileStem == "" {
		m.FileStem = strings.ReplaceAll(strings.ToLower(ym.ID), " ", "_") + "_inventory"
	}

	for i, yr := range ym.Rooms {
		items := make(map[inventory.ItemKey]inventory.ItemState)
		if yr.Profile != "" {
			base, ok := profiles[yr.Profile]
			if !ok {
				return nil, fmt.Errorf("room %d (%s): unknown profile %q", i, yr.Name, yr.Profile)
			}
			for k, s := range base {
				items[k] = s
			}
		}
		own, err := convertItems(yr.Items)
		if err != nil {
			return nil, fmt.Errorf("room %d (%s): %w", i, yr.Name, err)
		}
		for k, s := range own {
			items[k] = s
		}
		m.Seeds = append(m.Seeds, Seed{Name: strings.TrimSpace(yr.Name), Items: items})
	}

	for _, c := range ym.Summary.Classes {
		if c = strings.TrimSpace(c); c != "" {
			m.Summary.Classes = append(m.Summary.Classes, c)
		}
	}
	for _, it := range ym.Summary.Items {
		m.Summary.Items = append(m.Summary.Items, SummaryItem{Name: strings.TrimSpace(it.Name), Quantity: it.Quantity})
	}

	return m, nil
}

func resolveKeys(set string, explicit []string) ([]inventory.ItemKey, error) {
	if len(explicit) > 0 {
		if set != "" {
			return nil, fmt.Errorf("key_set and keys are mutually exclusive")
		}
		return inventory.ParseKeys(explicit)
	}
	keys, ok := keySets[set]
	if !ok {
		return nil, fmt.Errorf("key_set must be one of [primary, secondary, lab], got %q", set)
	}
	return append([]inventory.ItemKey(nil), keys...), nil
}

func convertItems(items yamlItems) (map[inventory.ItemKey]inventory.ItemState, error) {
	out := make(map[inventory.ItemKey]inventory.ItemState, len(items))
	for name, s := range items {
		k, err := inventory.ParseItemKey(name)
		if err != nil {
			return nil, err
		}
		if s.Usable < 0 || s.Broken < 0 {
			return nil, fmt.Errorf("item %q: counts must be >= 0", name)
		}
		out[k] = s
	}
	return out, nil
}
