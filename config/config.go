package config

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/spf13/viper"
)

type config struct {
	// Network is the default target network for new transactions.
	Network string

	// KeyDir is where key files are read from and written to.
	KeyDir string

	// Debug indicates if in debug mode.
	Debug bool

	// Label is used as prefix in log output, e.g., mainnet, testnet.
	Label string
}

var cfg config

// Load reads the config file, falling back to defaults when no file
// is present.
func Load(display bool) {
	viper.SetConfigName("config")
	viper.AddConfigPath("./config")
	// Incase test cases require loading configs
	viper.AddConfigPath("../config")

	viper.SetDefault("network", "skynet")
	viper.SetDefault("keydir", "./keys")

	if err := load(display); err != nil {
		panic(err)
	}

	if err := validateConfig(); err != nil {
		panic(err)
	}
}

/* ------------------------------
        `Get` functions
------------------------------ */

// DebugMode tells if running in debug mode.
func DebugMode() bool {
	return cfg.Debug
}

// GetLabel returns custom label as part of the log output prefix.
func GetLabel() string {
	return cfg.Label
}

// GetNetwork returns the default target network.
func GetNetwork() string {
	return cfg.Network
}

// GetKeyDir returns the key file directory.
func GetKeyDir() string {
	return cfg.KeyDir
}

/* ------------------------------
         Utility Functions
------------------------------ */

func load(display bool) error {
	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return err
	}

	if display {
		configContent, err := json.MarshalIndent(cfg, "", "    ")
		if err != nil {
			panic(err)
		}

		log.Println(string(configContent))
	}

	return nil
}

func validateConfig() error {
	if cfg.Network == "" {
		return errors.New("network must not be empty")
	}

	if cfg.KeyDir == "" {
		return errors.New("keydir must not be empty")
	}

	return nil
}
