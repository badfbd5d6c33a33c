// Package config resolves the logdump command settings from flags, LOGDUMP_*
// environment variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/arloliu/logdump/errs"
	"github.com/arloliu/logdump/format"
	"github.com/arloliu/logdump/record"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. LOGDUMP_COUNT_ONLY.
const EnvPrefix = "LOGDUMP"

// Setting keys. Flags carry the same names.
const (
	KeyCountOnly   = "count-only"
	KeyCompression = "compression"
	KeyMinSeverity = "min-severity"
	KeyUnique      = "unique"
	KeyChunkSize   = "chunk-size"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyOutput      = "output"
)

// CompressionAuto selects detection by magic bytes.
const CompressionAuto = "auto"

// Output modes of the print command.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the resolved command configuration.
type Config struct {
	CountOnly   bool   `key:"count-only"`
	Compression string `key:"compression"`
	MinSeverity string `key:"min-severity"`
	Unique      bool   `key:"unique"`
	ChunkSize   int    `key:"chunk-size" validate:"omitempty,min=16"`
	LogLevel    string `key:"log-level" validate:"omitempty,oneof=trace debug info warn warning error disabled off"`
	LogFormat   string `key:"log-format" validate:"oneof=console json"`
	Output      string `key:"output" validate:"oneof=text json"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// structValidator returns the shared validator, reporting fields by setting key.
func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if key := fld.Tag.Get("key"); key != "" {
				return key
			}

			return fld.Name
		})
	})

	return validate
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyCountOnly, false)
	v.SetDefault(KeyCompression, CompressionAuto)
	v.SetDefault(KeyMinSeverity, "")
	v.SetDefault(KeyUnique, false)
	v.SetDefault(KeyChunkSize, 0)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyOutput, OutputText)
}

// BindFlags binds each flag of fs that names a setting key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{
		KeyCountOnly, KeyCompression, KeyMinSeverity, KeyUnique,
		KeyChunkSize, KeyLogLevel, KeyLogFormat, KeyOutput,
	} {
		flag := fs.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	return nil
}

// Load enables environment lookup and reads the config file.
//
// With an empty cfgFile, .logdump.yaml is looked up in the home directory and the
// working directory, and a missing file is not an error.
func Load(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".logdump")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}

		return fmt.Errorf("read config: %w", err)
	}

	return nil
}

// FromViper builds a validated Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		CountOnly:   v.GetBool(KeyCountOnly),
		Compression: strings.ToLower(strings.TrimSpace(v.GetString(KeyCompression))),
		MinSeverity: strings.TrimSpace(v.GetString(KeyMinSeverity)),
		Unique:      v.GetBool(KeyUnique),
		ChunkSize:   v.GetInt(KeyChunkSize),
		LogLevel:    strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		LogFormat:   strings.ToLower(v.GetString(KeyLogFormat)),
		Output:      strings.ToLower(v.GetString(KeyOutput)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects unusable settings with errs.ErrInvalidOption.
func (c Config) Validate() error {
	if _, _, err := c.CompressionType(); err != nil {
		return fmt.Errorf("%w %s: %w", errs.ErrInvalidOption, KeyCompression, err)
	}
	if _, _, err := c.Severity(); err != nil {
		return fmt.Errorf("%w %s: %w", errs.ErrInvalidOption, KeyMinSeverity, err)
	}

	if err := structValidator().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w %s: %v fails %s=%s", errs.ErrInvalidOption, fe.Field(), fe.Value(), fe.Tag(), fe.Param())
		}

		return fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
	}

	return nil
}

// CompressionType returns the configured input compression. auto is false when a
// fixed type was requested.
func (c Config) CompressionType() (ct format.CompressionType, auto bool, err error) {
	if c.Compression == "" || c.Compression == CompressionAuto {
		return 0, true, nil
	}

	ct, err = format.ParseCompressionType(c.Compression)

	return ct, false, err
}

// Severity returns the minimum severity filter. ok is false when no filter is set.
func (c Config) Severity() (sev record.Severity, ok bool, err error) {
	if c.MinSeverity == "" {
		return record.SeverityDefault, false, nil
	}

	sev, err = record.ParseSeverity(c.MinSeverity)
	if err != nil {
		return record.SeverityDefault, false, err
	}

	return sev, true, nil
}
