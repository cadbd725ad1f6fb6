package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/isx/config"
	"github.com/teranos/isx/errors"
	"github.com/teranos/isx/gen/shape"
	isxtest "github.com/teranos/isx/internal/testing"
	"github.com/teranos/isx/version"
)

func parseFlags(t *testing.T, args ...string) (*generateFlags, *pflag.FlagSet) {
	t.Helper()
	var opts generateFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.register(fs)
	require.NoError(t, fs.Parse(args))
	return &opts, fs
}

func TestGenConfig_Defaults(t *testing.T) {
	settings = config.Defaults()
	opts, fs := parseFlags(t)

	cfg, err := opts.genConfig(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOutput, cfg.Extract.Output)
	assert.Equal(t, shape.NewFamilySet(shape.Empty, shape.Default), cfg.Extract.Families)
	assert.Equal(t, 64, cfg.Extract.MaxArity)
	assert.Equal(t, "Default", cfg.Extract.DefaultFuncPrefix)
	assert.True(t, cfg.Render.Assertions)
	assert.Equal(t, version.Get().Version, cfg.Render.Version)
}

func TestGenConfig_FlagsOverride(t *testing.T) {
	settings = config.Defaults()
	settings.Generate.Parallelism = 3
	opts, fs := parseFlags(t,
		"--family", "empty",
		"-o", "preds_gen.go",
		"--type", "Point,Line",
		"--tags", "linux,cgo",
		"--receiver", "self",
	)

	cfg, err := opts.genConfig(fs, []string{"./shapes"})
	require.NoError(t, err)
	assert.Equal(t, []string{"./shapes"}, cfg.Extract.Patterns)
	assert.Equal(t, "preds_gen.go", cfg.Extract.Output)
	assert.Equal(t, []string{"Point", "Line"}, cfg.Extract.Types)
	assert.Equal(t, shape.NewFamilySet(shape.Empty), cfg.Extract.Families)
	assert.Equal(t, []string{"linux", "cgo"}, cfg.Extract.BuildTags)
	assert.Equal(t, []string{"linux", "cgo"}, cfg.Render.BuildTags)
	assert.Equal(t, "self", cfg.Render.Receiver)
	assert.Equal(t, 3, cfg.Parallelism, "unchanged flags keep the configured value")
}

func TestGenConfig_Invalid(t *testing.T) {
	settings = config.Defaults()

	opts, fs := parseFlags(t, "-o", "preds.txt")
	_, err := opts.genConfig(fs, nil)
	assert.Error(t, err)

	opts, fs = parseFlags(t, "--family", "full")
	_, err = opts.genConfig(fs, nil)
	assert.Error(t, err)
}

func TestVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	VersionCmd.SetOut(&buf)
	VersionCmd.SetArgs([]string{"--json"})
	require.NoError(t, VersionCmd.Execute())

	var info version.Info
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, version.Get().Version, info.Version)
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "isxgen.toml")
	var buf bytes.Buffer
	InitCmd.SetOut(&buf)

	InitCmd.SetArgs([]string{"--path", path})
	require.NoError(t, InitCmd.Execute())

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults().Generate, loaded.Generate)

	InitCmd.SetArgs([]string{"--path", path})
	err = InitCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--force")

	InitCmd.SetArgs([]string{"--path", path, "--force"})
	assert.NoError(t, InitCmd.Execute())
}

func TestEncodeConfig(t *testing.T) {
	cfg := config.Defaults()

	data, err := encodeConfig(cfg, "toml")
	require.NoError(t, err)
	var fromTOML config.Config
	require.NoError(t, toml.Unmarshal(data, &fromTOML))
	assert.Equal(t, cfg.Generate, fromTOML.Generate)

	data, err = encodeConfig(cfg, "json")
	require.NoError(t, err)
	var fromJSON map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, config.DefaultOutput, fromJSON["generate"]["output"])

	data, err = encodeConfig(cfg, "yaml")
	require.NoError(t, err)
	var fromYAML config.Config
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, cfg.Generate, fromYAML.Generate)

	_, err = encodeConfig(cfg, "ini")
	assert.Error(t, err)
}

const recordSource = `package shapes

//isx:derive IsEmpty IsDefault
type Record struct {
	Foo string
	Bar bool
}
`

const aliasSource = `
//isx:derive
type Alias = Record
`

func TestGenerateAndCheck(t *testing.T) {
	dir := isxtest.CreateTestModule(t, map[string]string{"shapes.go": recordSource + aliasSource})
	t.Chdir(dir)

	settings = config.Defaults()
	settings.Generate.Assertions = false

	var out, errOut bytes.Buffer
	GenerateCmd.SetOut(&out)
	GenerateCmd.SetErr(&errOut)
	GenerateCmd.SetArgs(nil)
	err := GenerateCmd.Execute()
	require.Error(t, err, "the alias is reported")
	assert.Contains(t, errOut.String(), "Alias")

	generated, readErr := os.ReadFile(filepath.Join(dir, config.DefaultOutput))
	require.NoError(t, readErr, "other types are still written")
	assert.Contains(t, string(generated), "func (r Record) IsEmpty() bool")
	assert.NotContains(t, string(generated), "Alias")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes.go"), []byte(recordSource), 0644))

	out.Reset()
	CheckCmd.SetOut(&out)
	CheckCmd.SetErr(&errOut)
	CheckCmd.SetArgs(nil)
	require.NoError(t, CheckCmd.Execute())
	assert.Contains(t, out.String(), "up to date")

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultOutput), []byte(string(generated)+"\n// edited\n"), 0644))
	err = CheckCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrStale)
}
