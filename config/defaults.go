package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.output", DefaultOutput)
	v.SetDefault("generate.receiver", "")
	v.SetDefault("generate.build_tags", []string{})
	v.SetDefault("generate.families", []string{"empty", "default"})
	v.SetDefault("generate.parallelism", 0)
	v.SetDefault("generate.max_arity", 64) // [64]T and larger are rejected rather than unrolled
	v.SetDefault("generate.default_func_prefix", "Default")
	v.SetDefault("generate.assertions", true)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("required_version", "")
}

// Defaults returns the built-in configuration without reading any file or
// environment variable
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults are static; failing to decode them is a programming error
		panic(err)
	}
	return cfg
}

// String renders the effective configuration for -vv output
func (c *Config) String() string {
	return fmt.Sprintf("output=%s receiver=%q tags=%v families=%v parallelism=%d max_arity=%d default_func_prefix=%s assertions=%v",
		c.Generate.Output, c.Generate.Receiver, c.Generate.BuildTags, c.Generate.Families,
		c.Generate.Parallelism, c.Generate.MaxArity, c.Generate.DefaultFuncPrefix, c.Generate.Assertions)
}
