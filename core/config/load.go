package config

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := ioutil.ReadFile(filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = afero.NewBasePathFs(afero.NewOsFs(), path)
	return &out, nil
}

// Initialize creates the directory and writes the default configuration to
// it unless one already exists.
func Initialize(dir string, logger *log.Logger) error {
	logger.Printf("Initializing %q\n", dir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := os.Stat(configPath); {
	case err == nil:
		logger.Printf("- %s already exists, skipping\n", ConfigurationName)
		return nil
	case !os.IsNotExist(err):
		return err
	}

	logger.Printf("- Writing %s\n", ConfigurationName)
	return ioutil.WriteFile(configPath, defaultConfigData, 0600)
}
