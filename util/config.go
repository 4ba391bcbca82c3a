package util

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// DBConfig holds the credentials the mysql/mysqldump clients are invoked with.
type DBConfig struct {
	Name     string `mapstructure:"name" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Charset  string `mapstructure:"charset"`
}

// SSHConfig describes how to reach a remote environment. A nil SSHConfig on an
// Environment means the environment is local to this machine.
type SSHConfig struct {
	Host string `mapstructure:"host" validate:"required"`
	User string `mapstructure:"user"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Environment is one side of a move: a WordPress installation with its public
// vhost, filesystem path, database credentials and optional SSH endpoint.
type Environment struct {
	Vhost         string     `mapstructure:"vhost" validate:"required"`
	WordpressPath string     `mapstructure:"wordpress_path" validate:"required"`
	DB            DBConfig   `mapstructure:"database"`
	SSH           *SSHConfig `mapstructure:"ssh"`
	Exclude       []string   `mapstructure:"exclude"`
}

// Config is the parsed movefile.
type Config struct {
	Environment string `mapstructure:"environment"` // "development" enables console logging

	// Search and Replace are optional parallel lists of extra literal
	// replacements, applied after the derived vhost/path rules and as written in
	// both move directions. A search value without a replacement deletes its
	// matches; the reverse is a configuration error.
	Search  []string `mapstructure:"search"`
	Replace []string `mapstructure:"replace"`

	Local  Environment `mapstructure:"local"`
	Remote Environment `mapstructure:"remote"`
}

// LoadConfig reads movefile.yml from the given directory, with environment
// variable overrides. Nested keys map to underscored variables, so
// REMOTE_DATABASE_PASSWORD overrides remote.database.password.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("movefile")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}

// Validate checks the movefile for everything a move needs before any external
// command runs. All problems are reported at once rather than one per run.
func (config *Config) Validate() error {
	var result *multierror.Error

	v := validator.New()
	if err := v.Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				result = multierror.Append(result,
					fmt.Errorf("movefile field %s failed %q validation", fe.Namespace(), fe.Tag()))
			}
		} else {
			result = multierror.Append(result, err)
		}
	}

	if config.Remote.SSH == nil {
		result = multierror.Append(result, errors.New("remote environment needs an ssh section"))
	}

	if config.Local.SSH != nil {
		result = multierror.Append(result, errors.New("local environment must not have an ssh section"))
	}

	if config.Local.Vhost != "" && config.Local.Vhost == config.Remote.Vhost {
		result = multierror.Append(result, errors.New("local and remote vhost are identical, nothing to replace"))
	}

	return result.ErrorOrNil()
}

// ExtractHostPort parses the environment's vhost and returns the host and port
// components. If no port is specified in the URL, port will be an empty string.
func (e *Environment) ExtractHostPort() (host string, port string, err error) {
	urlStr, err := url.Parse(e.Vhost)
	if err != nil {
		err = fmt.Errorf("error parsing vhost url: %w", err)
		return
	}

	host, port, err = net.SplitHostPort(urlStr.Host)
	if err != nil {
		// If there's no port, SplitHostPort returns an error,
		// in which case the host itself is the hostname.
		host = urlStr.Host
		err = nil
	}

	return
}
