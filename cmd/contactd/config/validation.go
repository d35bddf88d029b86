package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/aeternum/contact/internal/logging"
	"github.com/aeternum/contact/internal/validate"
	"github.com/spf13/viper"
)

// Viper keys, identical to the flag names.
const (
	KeyAPI             = "api"
	KeyLogLevel        = "log-level"
	KeyLogFile         = "log-file"
	KeySweepInterval   = "sweep-interval"
	KeyShutdownTimeout = "shutdown-timeout"
)

// NewViper returns a viper instance reading CONTACTD_* environment variables,
// with dashes in keys mapped to underscores (log-level -> CONTACTD_LOG_LEVEL).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyAPI, DefaultAPI)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeySweepInterval, DefaultSweepInterval)
	v.SetDefault(KeyShutdownTimeout, DefaultShutdownTimeout)
	return v
}

// InitializeConfig fills Global from the merged flag, environment and default
// values held by v. Flags must already be bound to v.
func InitializeConfig(v *viper.Viper) {
	Global.APIAddr = v.GetString(KeyAPI)
	Global.LogLevel = strings.ToUpper(v.GetString(KeyLogLevel))
	Global.LogFile = v.GetString(KeyLogFile)
	Global.SweepInterval = v.GetDuration(KeySweepInterval)
	Global.ShutdownTimeout = v.GetDuration(KeyShutdownTimeout)

	if Global.APIAddr != DefaultAPI {
		Global.SetExplicitlySet(APIAddrField, true)
	}
	if Global.LogFile != "" {
		Global.SetExplicitlySet(LogFileField, true)
	}

	// Initialize DEBUG environment variable override
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}
}

// ValidateConfig validates and normalizes Global before the daemon starts.
// On success APIAddr holds the bare host and APIPort the port.
func ValidateConfig() error {
	netAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address: %w", err)
	}

	// The site and contactctl need a predictable address, so no OS-assigned port
	if err := validate.ValidatePortRange(netAddr.Port); err != nil {
		logging.Error("API port cannot be 0 (auto-assigned)")
		return fmt.Errorf("API address requires specific port (not 0): %w", err)
	}

	Global.APIAddr = netAddr.Host
	Global.APIPort = netAddr.Port

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	if err := validate.ValidatePositiveDuration(Global.SweepInterval, "sweep interval"); err != nil {
		return err
	}
	if err := validate.ValidatePositiveDuration(Global.ShutdownTimeout, "shutdown timeout"); err != nil {
		return err
	}

	return nil
}
