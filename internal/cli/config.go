package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the client configuration, read from FEELIO_* variables and an
// optional .feelio.yaml in the working or home directory.
type Config struct {
	APIURL   string
	Home     string
	Timezone string
}

func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("home", "~/.feelio")
	v.SetDefault("timezone", os.Getenv("TZ"))
	v.SetConfigName(".feelio") // .yaml is implicit
	v.SetEnvPrefix("FEELIO")
	v.AutomaticEnv()

	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	home, err := homedir.Expand(v.GetString("home"))
	if err != nil {
		return Config{}, fmt.Errorf("expand home: %w", err)
	}

	return Config{
		APIURL:   v.GetString("api_url"),
		Home:     home,
		Timezone: v.GetString("timezone"),
	}, nil
}
