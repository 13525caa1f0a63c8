package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"apisport/internal/sink"
	"apisport/internal/summoner/acquire"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvAPIKey is the environment variable holding the api-sports key
const EnvAPIKey = "SPORT_API_KEY"

type SportConfig struct {
	APIKey   string                            `mapstructure:"apikey"`
	Timeout  time.Duration                     `mapstructure:"timeout"`
	Leagues  map[string][]acquire.LeagueSeason `mapstructure:"leagues" required:"true"`
	Columns  []sink.Column                     `mapstructure:"columns"`
	Minio    MinioConfig                       `mapstructure:"minio"`
	Postgres PostgresConfig                    `mapstructure:"postgres"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

var sportTemplate = map[string]interface{}{
	"minio": map[string]interface{}{
		"address":   "localhost",
		"port":      9000,
		"ssl":       false,
		"region":    "", // auth fails if a region is set in minioclient
		"accesskey": "",
		"secretkey": "",
		"bucket":    "",
	},
	"postgres": map[string]interface{}{
		"dsn": "",
	},
}

// ensures all struct fields tagged as required are present in the config
func checkMissingFields(v *viper.Viper, structType reflect.Type, parentKey string) error {
	var missingFields []string

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldName := strings.Split(field.Tag.Get("mapstructure"), ",")[0]
		if fieldName == "" {
			fieldName = strings.ToLower(field.Name) // Default to lowercase field name
		}

		fullKey := fieldName
		if parentKey != "" {
			fullKey = parentKey + "." + fieldName
		}

		if field.Type.Kind() == reflect.Struct {
			// Recursively check nested structs
			if err := checkMissingFields(v, field.Type, fullKey); err != nil {
				missingFields = append(missingFields, err.Error())
			}
		} else if field.Tag.Get("required") == "true" && !v.IsSet(fullKey) {
			missingFields = append(missingFields, fullKey)
		}
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required fields: %v", strings.Join(missingFields, ", "))
	}

	return nil
}

// ReadSportConfig reads a JSON or YAML config file; the format follows the
// file extension and defaults to JSON.
func ReadSportConfig(cfgPath, filename string) (SportConfig, error) {
	v := viper.New()
	for key, value := range sportTemplate {
		log.Debug("setting default value for ", key, " to ", value)
		v.SetDefault(key, value)
	}

	v.SetConfigFile(filepath.Join(cfgPath, filename))
	v.SetConfigType(configType(filename))

	if err := v.ReadInConfig(); err != nil {
		return SportConfig{}, fmt.Errorf("error when parsing config %s: %w", filepath.Join(cfgPath, filename), err)
	}

	return FromViper(v)
}

// FromViper decodes an already loaded viper tree. The API key can always
// come from the SPORT_API_KEY environment variable.
func FromViper(v *viper.Viper) (SportConfig, error) {
	if err := v.BindEnv("apikey", EnvAPIKey); err != nil {
		return SportConfig{}, err
	}

	// Check for missing required fields before unmarshaling
	if err := checkMissingFields(v, reflect.TypeOf(SportConfig{}), ""); err != nil {
		return SportConfig{}, err
	}

	var conf SportConfig
	if err := v.Unmarshal(&conf); err != nil {
		return SportConfig{}, fmt.Errorf("error when decoding config: %w", err)
	}
	return conf, nil
}

// AcquireOptions returns the client options shared by every sport
func (c SportConfig) AcquireOptions() acquire.Options {
	return acquire.Options{
		APIKey:  c.APIKey,
		Timeout: c.Timeout,
		Logger:  log.StandardLogger(),
	}
}
