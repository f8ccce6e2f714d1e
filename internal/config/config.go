// Package config loads the yakari application configuration from defaults,
// YAKARI_* environment variables and an optional TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/yakari/internal/colors"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "YAKARI_"
	// EnvConfigPath points at an explicit configuration file.
	EnvConfigPath = EnvPrefix + "CONFIG_PATH"
	// EnvHome overrides the yakari home directory.
	EnvHome = EnvPrefix + "HOME"
)

const (
	// FileModeDir is the permission for directories.
	FileModeDir os.FileMode = 0755
	// FileModeFile is the permission for data files.
	FileModeFile os.FileMode = 0644
	// FileExtTOML is the extension of configuration files.
	FileExtTOML = ".toml"
)

var (
	config    map[string]string
	defaults  map[string]string
	explicit  map[string]bool
	mu        sync.RWMutex
	validOnce sync.Once
)

// Load (re)initializes configuration: defaults, environment, file,
// environment again so env wins, then validation.
func Load() {
	validOnce.Do(initValidators)

	mu.Lock()
	defer mu.Unlock()

	config = make(map[string]string)
	defaults = make(map[string]string)
	explicit = make(map[string]bool)

	setDefaults()
	loadFromEnv()
	loadFromFile()
	loadFromEnv()
	validate()
	computeDirs()
}

func setDefaults() {
	userHome, _ := os.UserHomeDir()
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome == "" {
		xdgConfigHome = filepath.Join(userHome, ".config")
	}
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		xdgStateHome = filepath.Join(userHome, ".local", "state")
	}

	home := filepath.Join(xdgConfigHome, "yakari")
	stateDir := filepath.Join(xdgStateHome, "yakari")

	setDefault("home", home)
	setDefault("config_dir", home)
	setDefault("menus_dir", filepath.Join(home, "configurations"))
	setDefault("state_dir", stateDir)
	setDefault("history_backend", "sqlite")
	setDefault("history_file", filepath.Join(stateDir, "history.db"))
	setDefault("history_max_size", "20")
	setDefault("suggestions_timeout", "0")
	setDefault("suggestions_filter", "substring")
	setDefault("inplace", "false")
	setDefault("dry_run", "false")
	setDefault("sort_arguments", "false")
	setDefault("sort_menus", "false")
	setDefault("sort_commands", "false")
	setDefault("logging_enabled", "false")
	setDefault("logging_level", "info")
	setDefault("logging_max_files", "10")
	setDefault("debug", "false")
}

func setDefault(key, value string) {
	config[key] = value
	defaults[key] = value
}

func set(key, value string) {
	config[key] = value
	explicit[key] = true
}

// Path returns the configuration file that Load reads, or "" when none exists.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return configPath()
}

func configPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir := config["config_dir"]
	if dir == "" {
		return ""
	}
	p := filepath.Join(dir, "config"+FileExtTOML)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

func loadFromFile() {
	path := configPath()
	if path == "" {
		return
	}
	if !strings.EqualFold(filepath.Ext(path), FileExtTOML) {
		colors.Warning(fmt.Sprintf("unsupported config file format: %s", path))
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		colors.Debug(fmt.Sprintf("unable to read config file %s: %v", path, err))
		return
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		colors.Warning(fmt.Sprintf("unable to parse config file %s: %v", path, err))
		return
	}
	for k, v := range raw {
		key := strings.ToLower(k)
		converted, ok := coerceConfigValue(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", key, v))
			continue
		}
		set(key, converted)
	}
}

// coerceConfigValue converts a decoded TOML value to its string form.
func coerceConfigValue(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		return typed, true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(typed), true
	default:
		return "", false
	}
}

func loadFromEnv() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, EnvPrefix) {
			continue
		}
		name, value, ok := strings.Cut(env, "=")
		if !ok || name == EnvConfigPath {
			continue
		}
		set(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), value)
	}
}

func validate() {
	for key, value := range config {
		validator := getValidator(key)
		if validator == nil {
			continue
		}
		def := defaults[key]
		normalized, err := validator(key, value, def)
		if err != nil {
			colors.Warning(fmt.Sprintf("validation error for %s: %v, using default: %s", key, err, def))
			config[key] = def
			continue
		}
		config[key] = normalized
	}
}

// computeDirs derives directories from an overridden home or state_dir
// unless those directories were set explicitly too.
func computeDirs() {
	home := config["home"]
	if explicit["home"] {
		if !explicit["config_dir"] {
			config["config_dir"] = home
		}
		if !explicit["menus_dir"] {
			config["menus_dir"] = filepath.Join(home, "configurations")
		}
	}
	if explicit["state_dir"] && !explicit["history_file"] {
		config["history_file"] = filepath.Join(config["state_dir"], "history.db")
	}
}

// WriteSample writes the default configuration to path as TOML. An existing
// file is left untouched.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), FileModeDir); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	mu.RLock()
	typed := make(map[string]any, len(defaults))
	for k, v := range defaults {
		typed[k] = valueToInterface(v)
	}
	mu.RUnlock()

	data, err := toml.Marshal(typed)
	if err != nil {
		return fmt.Errorf("marshal sample config: %w", err)
	}
	header := "# yakari configuration\n# Every key can be overridden with a YAKARI_<KEY> environment variable.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), FileModeFile); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func valueToInterface(val string) any {
	if n, err := strconv.Atoi(val); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return val
}

// Get returns a configuration value or default.
func Get(key, defaultValue string) string {
	mu.RLock()
	defer mu.RUnlock()
	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// GetInt returns a configuration value as integer, or default.
func GetInt(key string, defaultValue int) int {
	mu.RLock()
	defer mu.RUnlock()
	n, err := strconv.Atoi(config[key])
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBool returns a configuration value as boolean, or default.
func GetBool(key string, defaultValue bool) bool {
	mu.RLock()
	defer mu.RUnlock()
	switch normalizeBool(config[key]) {
	case "true":
		return true
	case "false":
		return false
	default:
		return defaultValue
	}
}

// GetSeconds returns an integer configuration value as a duration in seconds.
func GetSeconds(key string, defaultValue time.Duration) time.Duration {
	n := GetInt(key, -1)
	if n < 0 {
		return defaultValue
	}
	return time.Duration(n) * time.Second
}

// Keys returns every configured key, sorted.
func Keys() []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, 0, len(config))
	for k := range config {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
