// internal/config/config.go
//
// This package handles configuration and the .contextmenu directory.
// Every project that runs the demo gets a .contextmenu/ folder in its root
// holding config.yaml (panels, menus, theme) and the log directory.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".contextmenu"

	defaultWatcherZ     = 10
	defaultAnchorOffset = 5
)

// Actions the demo knows how to run. An item without an action only closes
// its menu.
const (
	ActionEcho     = "echo"
	ActionDetach   = "detach"
	ActionReattach = "reattach-all"
	ActionQuit     = "quit"
)

const defaultProjectConfigYAML = `# contextmenu project configuration
version: 1

# Colours accept hex (#RRGGBB) or ANSI numbers.
theme:
  accent: "#7D56F4"
  text: "#FAFAFA"
  border: "#874BFD"
  muted: "#626262"

# Stacking order. Menus must sit above watchers, the overlay below them.
layers:
  watcher: 10
  menu: 11
  overlay: 0
  anchor_offset: 5

# Each panel is drawn as a box and gets its own context menu.
# Item actions: echo | detach | reattach-all | quit (or none).
panels:
  - name: files
    text: Right-click for file actions
    menu:
      title: Files
      items:
        - label: Open
          action: echo
          data: open
        - label: Rename
          action: echo
        - label: Close this menu
  - name: editor
    text: Right-click for editor actions
    menu:
      title: Editor
      items:
        - label: Format
          action: echo
          data: format
        - label: Detach this panel
          action: detach
  - name: session
    text: Right-click for session actions
    menu:
      title: Session
      items:
        - label: Reattach all panels
          action: reattach-all
        - label: Quit
          action: quit

# Prometheus metrics. Leave listen empty to disable.
metrics:
  listen: ""
`

// ItemConfig is one menu row in config.yaml.
type ItemConfig struct {
	Label  string `yaml:"label"`
	Action string `yaml:"action,omitempty"`
	Data   any    `yaml:"data,omitempty"`
}

// MenuConfig is the menu attached to a panel.
type MenuConfig struct {
	Title string       `yaml:"title"`
	Items []ItemConfig `yaml:"items"`
}

// PanelConfig declares one trigger zone of the demo.
type PanelConfig struct {
	Name string     `yaml:"name"`
	Text string     `yaml:"text,omitempty"`
	Menu MenuConfig `yaml:"menu"`
}

// ThemeConfig captures menu colours.
type ThemeConfig struct {
	Accent string `yaml:"accent,omitempty"`
	Text   string `yaml:"text,omitempty"`
	Border string `yaml:"border,omitempty"`
	Muted  string `yaml:"muted,omitempty"`
}

// LayerConfig captures z-indexes and the horizontal anchor offset.
type LayerConfig struct {
	Watcher      int  `yaml:"watcher"`
	Menu         int  `yaml:"menu"`
	Overlay      int  `yaml:"overlay"`
	AnchorOffset *int `yaml:"anchor_offset,omitempty"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// ProjectConfig models .contextmenu/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version"`
	Theme   ThemeConfig   `yaml:"theme"`
	Layers  LayerConfig   `yaml:"layers"`
	Panels  []PanelConfig `yaml:"panels"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory the demo was started from
	ProjectDir string

	// ProjectStateDir is ProjectDir/.contextmenu
	ProjectStateDir string

	Project ProjectConfig
}

// InitDir creates the .contextmenu directory structure in projectDir and
// writes a default config.yaml when none exists.
//
// Structure created:
// .contextmenu/
// ├── config.yaml
// └── logs/
func InitDir(projectDir string) error {
	dir := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(dir, "config.yaml"))
}

// NewConfig loads the project configuration, falling back to defaults when
// config.yaml is missing.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:      projectDir,
		ProjectStateDir: filepath.Join(projectDir, Dir),
		Project:         defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.ProjectStateDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ProjectStateDir, "config.yaml")
}

// Panels returns the configured panels in display order.
func (c *Config) Panels() []PanelConfig {
	return c.Project.Panels
}

// AnchorOffset returns the configured horizontal menu offset.
func (c *Config) AnchorOffset() int {
	if c.Project.Layers.AnchorOffset == nil {
		return defaultAnchorOffset
	}
	return *c.Project.Layers.AnchorOffset
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	var parsed ProjectConfig
	if err := yaml.Unmarshal([]byte(defaultProjectConfigYAML), &parsed); err != nil {
		panic(fmt.Sprintf("config: default config does not parse: %v", err))
	}
	parsed.applyDefaults()
	parsed.normalize()
	return parsed
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Layers.Watcher == 0 {
		pc.Layers.Watcher = defaultWatcherZ
	}
	if pc.Layers.Menu == 0 {
		pc.Layers.Menu = pc.Layers.Watcher + 1
	}
}

func (pc *ProjectConfig) normalize() {
	for i := range pc.Panels {
		pc.Panels[i].normalize()
	}
	pc.Metrics.Listen = strings.TrimSpace(pc.Metrics.Listen)
	pc.Theme.Accent = strings.TrimSpace(pc.Theme.Accent)
	pc.Theme.Text = strings.TrimSpace(pc.Theme.Text)
	pc.Theme.Border = strings.TrimSpace(pc.Theme.Border)
	pc.Theme.Muted = strings.TrimSpace(pc.Theme.Muted)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if pc.Layers.Menu <= pc.Layers.Watcher {
		return fmt.Errorf("layers.menu must be above layers.watcher")
	}
	if pc.Layers.Overlay >= pc.Layers.Watcher {
		return fmt.Errorf("layers.overlay must be below layers.watcher")
	}
	seen := map[string]struct{}{}
	for i := range pc.Panels {
		if err := pc.Panels[i].validate(); err != nil {
			return fmt.Errorf("panels[%d]: %w", i, err)
		}
		if _, dup := seen[pc.Panels[i].Name]; dup {
			return fmt.Errorf("panels[%d]: duplicate name %q", i, pc.Panels[i].Name)
		}
		seen[pc.Panels[i].Name] = struct{}{}
	}
	return nil
}

func (p *PanelConfig) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Text = strings.TrimSpace(p.Text)
	if p.Text == "" {
		p.Text = p.Name
	}
	for i := range p.Menu.Items {
		p.Menu.Items[i].Label = strings.TrimSpace(p.Menu.Items[i].Label)
		p.Menu.Items[i].Action = strings.ToLower(strings.TrimSpace(p.Menu.Items[i].Action))
	}
}

func (p PanelConfig) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	for i, item := range p.Menu.Items {
		if item.Label == "" {
			return fmt.Errorf("menu.items[%d]: label is required", i)
		}
		switch item.Action {
		case "", ActionEcho, ActionDetach, ActionReattach, ActionQuit:
		default:
			return fmt.Errorf("menu.items[%d]: unknown action %q", i, item.Action)
		}
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
