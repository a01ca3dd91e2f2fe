package config

import (
	"fmt"
	"strings"

	internal "github.com/murreyjs/doppel/doppel"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Doppel DoppelConfig `mapstructure:"doppel"`
}

// DoppelConfig stores scanning and display configurations.
type DoppelConfig struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Display DisplayConfig `mapstructure:"display"`
}

// ScanConfig controls the walk and hashing stages.
type ScanConfig struct {
	HashAlgorithm    string   `mapstructure:"hashAlgorithm"`
	ChunkSize        int      `mapstructure:"chunkSize"`
	ProgressInterval int      `mapstructure:"progressInterval"`
	IgnoreFile       string   `mapstructure:"ignoreFile"`
	ExcludePatterns  []string `mapstructure:"excludePatterns"`
}

// DisplayConfig controls console rendering.
type DisplayConfig struct {
	ColorOutput    bool `mapstructure:"colorOutput"`
	FingerprintLen int  `mapstructure:"fingerprintLen"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("doppel.scan.hashAlgorithm", internal.DefaultHashAlgorithm)
	viper.SetDefault("doppel.scan.chunkSize", internal.DefaultChunkSize)
	viper.SetDefault("doppel.scan.progressInterval", internal.DefaultProgressInterval)
	viper.SetDefault("doppel.scan.ignoreFile", internal.DefaultIgnoreFile)
	viper.SetDefault("doppel.display.colorOutput", true)
	viper.SetDefault("doppel.display.fingerprintLen", internal.DefaultFingerprintLen)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. doppel.scan.chunkSize becomes DOPPEL_SCAN_CHUNKSIZE

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
