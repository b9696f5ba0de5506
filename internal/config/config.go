package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "FINTRACK_"

type Application struct {
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Auth     Auth     `koanf:"auth"`
	Metrics  Metrics  `koanf:"metrics"`
	Database Database `koanf:"db"`
}

type Auth struct {
	JwtSecret string        `koanf:"jwtsecret"`
	TokenTTL  time.Duration `koanf:"tokenttl"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
	Pool   Pool   `koanf:"pool"`
}

type Pool struct {
	MaxConns        int32         `koanf:"maxconns"`
	MinConns        int32         `koanf:"minconns"`
	MaxConnLifetime time.Duration `koanf:"maxconnlifetime"`
}

func defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Port: 5000,
		Auth: Auth{
			TokenTTL: 24 * time.Hour,
		},
		Metrics: Metrics{
			Enabled: true,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "fintrack",
			Pass:   "",
			Name:   "fintrack",
			Schema: "fintrack",
			Pool: Pool{
				MaxConns:        10,
				MinConns:        1,
				MaxConnLifetime: time.Hour,
			},
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path and FINTRACK_* environment
// variables, in that order. A .env file in the working directory is loaded into the environment first.
func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	if app.Auth.JwtSecret == "" {
		log.Warn("auth.jwtsecret is not set, issued tokens will not survive a restart with a different secret")
	}

	return app, nil
}
