package parser

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"runbox/pkg/profile"
)

// DefaultProfileName is the profile file looked up in the working directory
// when no explicit path is given.
const DefaultProfileName = "runbox.yaml"

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Parse loads and validates a runbox profile. When filePath is empty the
// default runbox.yaml in the working directory is used if present; a missing
// profile is not an error and yields the built-in defaults. An explicitly
// named profile must exist. RUNBOX_-prefixed environment variables override
// file values either way.
func Parse(filePath string) (*profile.Profile, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RUNBOX")
	v.AutomaticEnv()

	switch {
	case filePath != "":
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("profile file not found: %s", filePath)
		}
		v.SetConfigFile(filePath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read profile file: %w", err)
		}
	default:
		if _, err := os.Stat(DefaultProfileName); err == nil {
			v.SetConfigFile(DefaultProfileName)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read profile file: %w", err)
			}
		}
	}

	var p profile.Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile file - malformed YAML: %w", err)
	}

	if err := validate.Struct(&p); err != nil {
		return nil, formatValidationError(err)
	}

	return &p, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("image", profile.DefaultImage)
	v.SetDefault("runtime", profile.DefaultRuntime)
	v.SetDefault("workdir", profile.DefaultWorkdir)
	v.SetDefault("credentialsDir", profile.DefaultCredentialsDir)
	v.SetDefault("credentialsMount", profile.DefaultCredentialsMount)
	v.SetDefault("alwaysPull", false)
	v.SetDefault("spinnerInterval", profile.DefaultSpinnerInterval)
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, formatFieldError(e))
		}

		if len(errorMessages) == 1 {
			return fmt.Errorf("validation error: %s", errorMessages[0])
		}

		result := "validation errors:\n"
		for _, msg := range errorMessages {
			result += fmt.Sprintf("  - %s\n", msg)
		}
		return fmt.Errorf("%s", result)
	}
	return fmt.Errorf("validation failed: %w", err)
}

// formatFieldError formats a single validation error into a user-friendly message.
func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	switch tag {
	case "required":
		return fmt.Sprintf("field '%s' is required but missing", field)
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "startswith":
		return fmt.Sprintf("field '%s' must start with '%s'", field, e.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("field '%s' failed validation (%s)", field, tag)
	}
}
