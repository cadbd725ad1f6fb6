package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/isx/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Generate.Output) == "" {
		return errors.New("generate.output cannot be empty")
	}
	if !strings.HasSuffix(c.Generate.Output, ".go") || strings.HasSuffix(c.Generate.Output, "_test.go") {
		return errors.Newf("generate.output must be a non-test .go file, got %q", c.Generate.Output)
	}

	// Parallelism: 0 = GOMAXPROCS, negative = invalid
	if c.Generate.Parallelism < 0 {
		return errors.Newf("generate.parallelism must be >= 0, got %d", c.Generate.Parallelism)
	}
	if c.Generate.MaxArity <= 0 {
		return errors.Newf("generate.max_arity must be > 0, got %d", c.Generate.MaxArity)
	}

	for _, f := range c.Generate.Families {
		switch strings.ToLower(f) {
		case "empty", "isempty", "default", "isdefault":
		default:
			return errors.Newf("generate.families: unknown family %q (want empty or default)", f)
		}
	}

	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	if c.RequiredVersion != "" {
		if _, err := semver.NewConstraint(c.RequiredVersion); err != nil {
			return errors.Wrapf(err, "invalid required_version constraint %q", c.RequiredVersion)
		}
	}

	return nil
}

// CheckVersion verifies the running isxgen satisfies required_version
func (c *Config) CheckVersion(running string) error {
	if c.RequiredVersion == "" {
		return nil
	}

	ver, err := semver.NewVersion(running)
	if err != nil {
		return errors.Wrapf(err, "invalid isxgen version %s", running)
	}

	constraint, err := semver.NewConstraint(c.RequiredVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", c.RequiredVersion)
	}

	if !constraint.Check(ver) {
		return errors.WithHint(
			errors.Newf("config requires isxgen %s, but running %s", c.RequiredVersion, running),
			"go install the required isxgen version or relax required_version in isxgen.toml")
	}

	return nil
}
