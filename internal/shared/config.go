package shared

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/outofoffice3/common/logger"
)

// Config is built once per invocation from the process environment.
type Config struct {
	LogLevel             string `env:"LOG_LEVEL" envDefault:"INFO"`
	QueueURL             string `env:"SQS_URL"`
	ExcludedAccounts     string `env:"EXCLUDED_ACCOUNTS"`
	ConfigBucketName     string `env:"CONFIG_BUCKET_NAME" envDefault:"smt-config-recorder"`
	ConfigFileKey        string `env:"CONFIG_FILE_KEY" envDefault:"config/params-config-recorder.json"`
	StackSetName         string `env:"STACK_SET_NAME" envDefault:"AWSControlTowerBP-BASELINE-CONFIG"`
	ProvisioningRoleArn  string `env:"PROVISIONING_ROLE_ARN"`
	CacheExclusionConfig bool   `env:"CACHE_EXCLUSION_CONFIG" envDefault:"false"`
}

// LoadConfig parses the environment into a Config. On a parse error the
// fields that did parse are kept and the error is returned with them.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when the environment is unusable.
func DefaultConfig() Config {
	return Config{
		LogLevel:         "INFO",
		ConfigBucketName: string(ConfigFileBucketName),
		ConfigFileKey:    string(ConfigFileObjKey),
		StackSetName:     string(BaselineStackSetName),
	}
}

// ConfigFileSuffix is the object name whose change triggers a full override.
func (c Config) ConfigFileSuffix() string {
	if c.ConfigFileKey == "" {
		return path.Base(string(ConfigFileObjKey))
	}
	return path.Base(c.ConfigFileKey)
}

// IsDebug reports whether LOG_LEVEL asks for debug output.
func (c Config) IsDebug() bool {
	return strings.EqualFold(strings.TrimSpace(c.LogLevel), "DEBUG")
}

// NewLogger returns a console logger at the configured level.
func (c Config) NewLogger() logger.Logger {
	if c.IsDebug() {
		return logger.NewConsoleLogger(logger.LogLevelDebug)
	}
	return logger.NewConsoleLogger(logger.LogLevelInfo)
}

// Validate reports missing or malformed settings.
func (c Config) Validate() error {
	var errMsgs []string
	if c.QueueURL == "" {
		errMsgs = append(errMsgs, string(EnvQueueURL)+" is not set")
	} else if !IsValidQueueURL(c.QueueURL) {
		errMsgs = append(errMsgs, "invalid queue url ["+c.QueueURL+"]")
	}
	if c.ConfigBucketName == "" || c.ConfigFileKey == "" {
		errMsgs = append(errMsgs, "config file location is not set")
	}
	if c.StackSetName == "" {
		errMsgs = append(errMsgs, string(EnvStackSetName)+" is not set")
	}
	accounts, err := ParseAccountList(c.ExcludedAccounts)
	if err != nil {
		errMsgs = append(errMsgs, string(EnvExcludedAccounts)+" "+err.Error())
	} else if invalid := InvalidAccountIds(accounts); len(invalid) > 0 {
		errMsgs = append(errMsgs, "invalid account ids in "+string(EnvExcludedAccounts)+" "+fmt.Sprint(invalid))
	}
	if len(errMsgs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errMsgs, " | "))
	}
	return nil
}
