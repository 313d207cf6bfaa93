package schema

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Options are the connection settings of a generated persistence layer. They are read
// from template data so --config files can override any of them.
type Options struct {
	DBName       string `mapstructure:"dbName"`
	EnvVar       string `mapstructure:"envVar"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Dialect      string `mapstructure:"dialect"`
	Timestamps   bool   `mapstructure:"timestamps"`
	SharedDomain string `mapstructure:"sharedDomain"`
}

// DecodeOptions reads Options from template data and fills defaults derived from the
// entity's kebab-case name and the database kind ("mongodb" or "mysql").
func DecodeOptions(data map[string]any, kind, kebabName string) (Options, error) {
	opts := Options{Timestamps: true}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Options{}, fmt.Errorf("failed to build options decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return Options{}, fmt.Errorf("invalid %s options: %w", kind, err)
	}

	owner := kebabName
	if opts.SharedDomain != "" {
		owner = opts.SharedDomain
	}
	envPrefix := strings.ToUpper(strings.ReplaceAll(owner, "-", "_"))
	dbPrefix := strings.ReplaceAll(owner, "-", "_")

	switch kind {
	case "mongodb":
		if opts.EnvVar == "" {
			opts.EnvVar = envPrefix + "_MONGODB_URI"
		}
		if opts.DBName == "" {
			opts.DBName = dbPrefix + "_db"
		}
	case "mysql":
		if opts.EnvVar == "" {
			opts.EnvVar = envPrefix + "_MYSQL"
		}
		if opts.DBName == "" {
			opts.DBName = dbPrefix + "_db"
		}
		if opts.Host == "" {
			opts.Host = "localhost"
		}
		if opts.Port == 0 {
			opts.Port = 3306
		}
		if opts.Dialect == "" {
			opts.Dialect = "mysql"
		}
	default:
		return Options{}, fmt.Errorf("unknown database kind %q", kind)
	}

	return opts, nil
}
