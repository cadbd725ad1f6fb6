// Package config loads isxgen settings.
//
// Sources, lowest to highest precedence: built-in defaults, the user config
// (~/.config/isxgen/config.toml), the nearest isxgen.toml found by walking up
// from the working directory, ISXGEN_* environment variables, and finally
// command-line flags (applied by the caller).
package config

// Config represents the isxgen configuration
type Config struct {
	Generate        GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Log             LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
	RequiredVersion string         `mapstructure:"required_version" toml:"required_version,omitempty" json:"required_version,omitempty" yaml:"required_version,omitempty"` // semver constraint on the running isxgen, e.g. ">= 0.1"
}

// GenerateConfig configures code generation
type GenerateConfig struct {
	Output            string   `mapstructure:"output" toml:"output" json:"output" yaml:"output"`                                                     // generated file name inside the package directory
	Receiver          string   `mapstructure:"receiver" toml:"receiver,omitempty" json:"receiver,omitempty" yaml:"receiver,omitempty"`               // receiver name; empty derives one from the type name
	BuildTags         []string `mapstructure:"build_tags" toml:"build_tags,omitempty" json:"build_tags,omitempty" yaml:"build_tags,omitempty"`       // tags used to load packages and written as //go:build
	Families          []string `mapstructure:"families" toml:"families" json:"families" yaml:"families"`                                             // families requested by -type when no directive says otherwise
	Parallelism       int      `mapstructure:"parallelism" toml:"parallelism" json:"parallelism" yaml:"parallelism"`                                 // 0 = GOMAXPROCS
	MaxArity          int      `mapstructure:"max_arity" toml:"max_arity" json:"max_arity" yaml:"max_arity"`                                         // longest array type expanded element by element
	DefaultFuncPrefix string   `mapstructure:"default_func_prefix" toml:"default_func_prefix" json:"default_func_prefix" yaml:"default_func_prefix"` // unmarked unions compare against <prefix><Union>()
	Assertions        bool     `mapstructure:"assertions" toml:"assertions" json:"assertions" yaml:"assertions"`                                     // emit var _ isx.Emptier = (*T)(nil)
}

// LogConfig configures logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"`
}

// File names and permissions
const (
	ProjectConfigName      = "isxgen.toml"
	DefaultOutput          = "isx_gen.go"
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)
