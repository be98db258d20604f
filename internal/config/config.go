package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Server   Server   `koanf:"server"`
	Frontend Frontend `koanf:"frontend"`
	Database Database `koanf:"db"`
	Seed     Seed     `koanf:"seed"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Path string `koanf:"path"`
}

// Seed describes the assignees and tags installed on first run, when no
// calendar document exists in storage yet.
type Seed struct {
	Assignees []SeedAssignee `koanf:"assignees"`
	Tags      []SeedTag      `koanf:"tags"`
}

type SeedAssignee struct {
	Name   string `koanf:"name"`
	Avatar string `koanf:"avatar"`
}

type SeedTag struct {
	Name  string `koanf:"name"`
	Color string `koanf:"color"`
}

func Load(path string) (Application, error) {
	// Best effort: a local .env file overrides nothing, it only populates
	// the process environment before the env provider runs.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debugf("no .env file loaded: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Server: Server{
			Addr: ":8282",
		},
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Path: "./data/kalendo.db",
		},
		Seed: Seed{
			Assignees: []SeedAssignee{
				{Name: "John Doe", Avatar: "https://i.pravatar.cc/150?u=john"},
				{Name: "Jane Smith", Avatar: "https://i.pravatar.cc/150?u=jane"},
			},
			Tags: []SeedTag{
				{Name: "Important", Color: "bg-red-100 text-red-700"},
				{Name: "Meeting", Color: "bg-blue-100 text-blue-700"},
				{Name: "Personal", Color: "bg-green-100 text-green-700"},
				{Name: "Work", Color: "bg-purple-100 text-purple-700"},
			},
		},
	}, "koanf"), nil)
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
		Prefix: "KALENDO_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "KALENDO_")), "_", ".")
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

	return app, nil
}
