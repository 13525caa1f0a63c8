package testHelpers

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// SampleConfigDir holds the configs shared by the tests
func SampleConfigDir() string {
	return filepath.Join(projectRoot(), "testHelpers", "sampleConfigs")
}

// NewTempConfig writes settings as a config file named fileName in dir and
// returns its path. The format follows the file extension.
func NewTempConfig(dir, fileName string, settings map[string]interface{}) (string, error) {
	v := viper.New()
	for key, value := range settings {
		v.Set(key, value)
	}
	path := filepath.Join(dir, fileName)
	if err := v.WriteConfigAs(path); err != nil {
		return "", err
	}
	return path, nil
}
