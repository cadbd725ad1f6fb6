package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/teranos/isx/errors"
)

// UnknownKeys decodes the TOML file at path against Config and returns the
// keys it does not recognize, e.g. a misspelled "generate.max_artiy". Viper
// ignores such keys silently.
func UnknownKeys(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	var keys []string
	for _, key := range md.Undecoded() {
		keys = append(keys, key.String())
	}
	return keys, nil
}

// ConfigFiles returns the config files Load reads, lowest precedence first.
func ConfigFiles() []string {
	wd, _ := os.Getwd()
	return configFiles(wd)
}
