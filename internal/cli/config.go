package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

// Config holds defaults read from config.toml. Flags given on the command
// line take precedence.
//
//	depth = 5
//	threshold = 0.002
//	color = "Blues"
//	resolution = 9
//	color_mode = "log"
//	schemes = "~/.config/apollon/schemes.toml"
//	cache_url = "redis://localhost:6379/0"
//	no_cache = false
type Config struct {
	Depth      *int     `toml:"depth"`
	Threshold  *float64 `toml:"threshold"`
	Color      string   `toml:"color"`
	Resolution int      `toml:"resolution"`
	ColorMode  string   `toml:"color_mode"`
	Schemes    string   `toml:"schemes"`
	CacheURL   string   `toml:"cache_url"`
	NoCache    bool     `toml:"no_cache"`
}

// configFileName is the file looked up in the config directory.
const configFileName = "config.toml"

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields an empty config; a missing
// explicit file is an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown key %q in config %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
