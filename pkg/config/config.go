// Package config loads acdoc's user settings. Settings come from a JSON
// file in the user's configuration folder and are overridden by whatever
// was given on the command line.
package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
	"github.com/spf13/pflag"

	"acdoc/pkg/render"
)

// FileName is looked up in every configuration folder, local first.
const FileName = "config.json"

// Command-line flag names.
const (
	FlagDoxygen    = "doxygen"
	FlagTarget     = "target"
	FlagStylesheet = "stylesheet"
	FlagNoDiagram  = "no-diagram"
)

type Config struct {
	APIDocRoot string `json:"apidoc_root"`
	Target     string `json:"target"`
	Stylesheet string `json:"stylesheet"`
	Diagram    bool   `json:"diagram"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Target:     ".",
		Stylesheet: render.DefaultStylesheet,
		Diagram:    true,
	}
}

// Parse reads a JSON configuration. Keys left out keep their defaults.
func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parsing configuration")
	}
	return c, nil
}

// LoadFile reads the configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return c, nil
}

// Load reads config.json from the first configuration folder holding one.
// No file means defaults.
func Load(log *slog.Logger) (*Config, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dirs := configdir.New("acdoc", "acdoc")
	folder := dirs.QueryFolderContainsFile(FileName)
	if folder == nil {
		log.Debug("no configuration file, using defaults")
		return Default(), nil
	}
	data, err := folder.ReadFile(FileName)
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration in %s", folder.Path)
	}
	log.Debug("configuration loaded", slog.String("dir", folder.Path))
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", folder.Path)
	}
	return c, nil
}

// RegisterFlags declares the flags that override configuration keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagDoxygen, "", "root of pre-rendered API documentation to link instructions and formats into")
	fs.String(FlagTarget, ".", "output directory")
	fs.String(FlagStylesheet, render.DefaultStylesheet, "stylesheet referenced by every page")
	fs.Bool(FlagNoDiagram, false, "do not draw the pipeline diagram")
}

// ApplyFlags overrides c with every flag set explicitly in fs.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	strs := []struct {
		flag string
		dst  *string
	}{
		{FlagDoxygen, &c.APIDocRoot},
		{FlagTarget, &c.Target},
		{FlagStylesheet, &c.Stylesheet},
	}
	for _, s := range strs {
		if !fs.Changed(s.flag) {
			continue
		}
		v, err := fs.GetString(s.flag)
		if err != nil {
			return errors.Wrapf(err, "flag --%s", s.flag)
		}
		*s.dst = v
	}
	if fs.Changed(FlagNoDiagram) {
		off, err := fs.GetBool(FlagNoDiagram)
		if err != nil {
			return errors.Wrapf(err, "flag --%s", FlagNoDiagram)
		}
		c.Diagram = !off
	}
	return nil
}
