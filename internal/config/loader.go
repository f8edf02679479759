package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
	tomlparser "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// GlobalConfigDir is the directory name for global configuration.
	GlobalConfigDir = ".gitship"

	// GlobalConfigFile is the name of the global configuration file.
	GlobalConfigFile = "config.toml"

	// ProjectConfigFile is the project configuration file name.
	ProjectConfigFile = ".gitship.toml"

	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "GITSHIP_"
)

// Loader loads configuration from multiple sources using koanf.
// Precedence order (highest to lowest):
// 1. CLI flags
// 2. Environment variables (GITSHIP_*)
// 3. Project config (.gitship.toml in the working directory)
// 4. Global config (~/.gitship/config.toml)
// 5. Defaults
type Loader struct {
	homeDir string
	workDir string
}

// NewLoader creates a Loader resolving the home directory automatically.
func NewLoader(workDir string) (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get home directory")
	}

	return NewLoaderWithDirs(homeDir, workDir), nil
}

// NewLoaderWithDirs creates a Loader with custom directories (for testing).
func NewLoaderWithDirs(homeDir, workDir string) *Loader {
	return &Loader{
		homeDir: homeDir,
		workDir: workDir,
	}
}

// GlobalConfigPath returns the path of the global configuration file.
func (l *Loader) GlobalConfigPath() string {
	return filepath.Join(l.homeDir, GlobalConfigDir, GlobalConfigFile)
}

// ProjectConfigPath returns the path of the project configuration file.
func (l *Loader) ProjectConfigPath() string {
	return filepath.Join(l.workDir, ProjectConfigFile)
}

// Load loads configuration from all sources with precedence and validates
// the result. The flags map uses koanf paths ("git.branch") and only wins
// for flags the user actually set.
func (l *Loader) Load(flags map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load defaults")
	}

	if err := loadTOMLFile(k, l.GlobalConfigPath()); err != nil {
		return nil, errors.Wrap(err, "failed to load global config")
	}

	if err := loadTOMLFile(k, l.ProjectConfigPath()); err != nil {
		return nil, errors.Wrap(err, "failed to load project config")
	}

	envOpt := env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envTransform,
	}
	if err := k.Load(env.Provider(".", envOpt), nil); err != nil {
		return nil, errors.Wrap(err, "failed to load env vars")
	}

	if len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, errors.Wrap(err, "failed to load flags")
		}
	}

	var cfg Config

	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &cfg, nil
}

// loadTOMLFile merges one TOML file into the koanf tree; a missing file is
// not an error.
func loadTOMLFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrapf(err, "failed to stat %s", path)
	}

	if err := k.Load(file.Provider(path), tomlparser.Parser()); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}

	return nil
}

// envTransform maps GITSHIP_GIT_COMMIT_MESSAGE to git.commit_message: the
// first underscore separates the section, the rest stays underscored.
func envTransform(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key, value
	}

	return section + "." + rest, value
}
