package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/binheat/pkg/errors"
)

// Config holds user defaults read from a TOML file. Command-line flags
// override any value set here.
//
//	font = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
//	font_size = 10
//	sort = false
//	format = "svg"
//
//	[colors]
//	column_band = "#dddddd"
//	row_band = "#ffff80"
//
//	[serve]
//	addr = ":9090"
type Config struct {
	Font      string      `toml:"font"`
	FontSize  float64     `toml:"font_size"`
	Sort      *bool       `toml:"sort"`
	Multiline bool        `toml:"multiline"`
	Format    string      `toml:"format"`
	Scale     float64     `toml:"scale"`
	Colors    ColorConfig `toml:"colors"`
	Serve     ServeConfig `toml:"serve"`
}

// ColorConfig overrides the band colors; values are hex strings.
type ColorConfig struct {
	ColumnBand string `toml:"column_band"`
	RowBand    string `toml:"row_band"`
}

// ServeConfig holds defaults for the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// loadConfig reads the config file at path. With an empty path it falls back
// to the default location, where a missing file yields an empty Config.
// A missing explicit path is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(dir, configFileName)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
