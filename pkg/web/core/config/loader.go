package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tigerroll/pipelines/pkg/web/support/util/configbinder"
	"github.com/tigerroll/pipelines/pkg/web/support/util/exception"
	"github.com/tigerroll/pipelines/pkg/web/support/util/logger"
)

const moduleName = "config"

// LoadConfig builds the configuration from, in increasing precedence:
// NewConfig defaults, the embedded YAML document, the .env file and process
// environment, and finally "--dotted.key=value" process arguments.
// The result is validated before it is returned.
//
// Parameters:
//
//	envFilePath: The path to the .env file. Empty means ".env" in the working directory.
//	embeddedConfig: The embedded YAML configuration bytes. May be empty.
//	args: Process arguments (without the program name).
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig, args []string) (*Config, error) {
	loadDotEnv(envFilePath)

	cfg := NewConfig()

	// YAML is decoded onto the defaults, so keys absent from the document keep their default.
	if len(embeddedConfig) > 0 {
		if err := yaml.Unmarshal(embeddedConfig, cfg); err != nil {
			return nil, exception.NewAppError(moduleName, "failed to unmarshal embedded config", err)
		}
	}

	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem(), ""); err != nil {
		return nil, exception.NewAppError(moduleName, "failed to load config from environment variables", err)
	}

	if err := applyArgs(cfg, args); err != nil {
		return nil, exception.NewAppError(moduleName, "failed to apply command line properties", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, exception.NewAppError(moduleName, "configuration is invalid", err)
	}
	return cfg, nil
}

func loadDotEnv(envFilePath string) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Debugf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
		return
	}
	if err := godotenv.Load(); err != nil {
		logger.Debugf(".env file not found or could not be loaded: %v", err)
	}
}

// ParseArgs extracts "--key=value" properties from process arguments.
// Keys are dotted paths relative to the "pipelines" section ("server.port").
// Arguments of any other shape are returned separately and otherwise ignored.
func ParseArgs(args []string) (properties map[string]string, ignored []string) {
	properties = make(map[string]string)
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			ignored = append(ignored, arg)
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !ok || key == "" {
			ignored = append(ignored, arg)
			continue
		}
		properties[key] = value
	}
	return properties, ignored
}

func applyArgs(cfg *Config, args []string) error {
	properties, ignored := ParseArgs(args)
	for _, arg := range ignored {
		logger.Debugf("Ignoring command line argument '%s'.", arg)
	}
	if len(properties) == 0 {
		return nil
	}
	nested, err := configbinder.ExpandDottedKeys(properties)
	if err != nil {
		return err
	}
	return configbinder.BindProperties(nested, &cfg.Pipelines)
}

// loadStructFromEnv recursively loads configuration values into a struct from environment variables.
// It uses the "yaml" tag path to determine the environment variable name,
// e.g. Pipelines.Server.Port is read from PIPELINES_SERVER_PORT.
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}
		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// setField sets the value of a reflect.Value field based on its kind.
// It handles string, int, float, and bool types.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Float64, reflect.Float32:
		floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	}
	return nil
}
