package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
)

// Color modes.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt      string `json:"prompt"`
	Hostname    string `json:"hostname" validate:"required,hostname_rfc1123"`
	Color       string `json:"color" validate:"oneof=always auto never"`
	HistoryFile string `json:"history_file"`
	EventLog    string `json:"event_log" validate:"required"`

	DisabledBuiltins []string `json:"disabled_builtins" validate:"unique,dive,required"`

	Env map[string]string `json:"env" validate:"dive,keys,required,excludes==,endkeys"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewMemMapFs()
	}
	return c.configFs
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// Path returns the location of name inside the configuration directory, or
// the empty string if the configuration is not backed by one.
func (c *Configuration) Path(name string) string {
	if base, ok := c.configFs.(*afero.BasePathFs); ok {
		if path, err := base.RealPath(name); err == nil {
			return path
		}
	}
	return ""
}

// HistoryPath returns the real path of the history file or the empty string
// if history is disabled.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	return c.Path(c.HistoryFile)
}

// IsDisabled reports whether the named builtin is disabled.
func (c *Configuration) IsDisabled(name string) bool {
	for _, v := range c.DisabledBuiltins {
		if v == name {
			return true
		}
	}
	return false
}

// Environ returns the configured environment as KEY=VALUE pairs.
func (c *Configuration) Environ() []string {
	var out []string
	for k, v := range c.Env {
		out = append(out, k+"="+v)
	}
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

// Default returns the built-in configuration backed by an in-memory
// directory.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}
