package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Listen   string   `koanf:"listen"`
	Frontend Frontend `koanf:"frontend"`
	Auth     Auth     `koanf:"auth"`
	Google   Google   `koanf:"google"`
	Chat     Chat     `koanf:"chat"`
	Places   Places   `koanf:"places"`
	Board    Board    `koanf:"board"`
	Database Database `koanf:"db"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Auth holds the settings for validating bearer tokens issued by the
// identity provider. Secret is the HS256 signing secret shared with it.
type Auth struct {
	Secret   string `koanf:"secret"`
	Issuer   string `koanf:"issuer"`
	Audience string `koanf:"audience"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	MapsApiKey   string `koanf:"mapsapikey"`
}

type Chat struct {
	OpenRouterApiKey string `koanf:"openrouterapikey"`
	OpenRouterUrl    string `koanf:"openrouterurl"`
	EmotionApiKey    string `koanf:"emotionapikey"`
	EmotionUrl       string `koanf:"emotionurl"`
	Model            string `koanf:"model"`
}

type Places struct {
	GeocodeUrl string `koanf:"geocodeurl"`
	PlacesUrl  string `koanf:"placesurl"`
}

type Board struct {
	XpGoal        int `koanf:"xpgoal"`
	ChallengeXp   int `koanf:"challengexp"`
	BoardTileSize int `koanf:"boardtilesize"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host:   "http://localhost:3000",
		Listen: ":8080",
		Frontend: Frontend{
			Enabled: true,
		},
		Chat: Chat{
			OpenRouterUrl: "https://openrouter.ai/api/v1",
			EmotionUrl:    "https://api.blossoms.ai/v1",
			Model:         "anthropic/claude-3.5-sonnet",
		},
		Places: Places{
			GeocodeUrl: "https://maps.googleapis.com/maps/api/geocode/json",
			PlacesUrl:  "https://places.googleapis.com/v1",
		},
		Board: Board{
			XpGoal:        500,
			ChallengeXp:   25,
			BoardTileSize: 15,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "unimind",
			Pass:   "",
			Name:   "unimind",
			Schema: "unimind",
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
		Prefix: "UNIMIND_",
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "UNIMIND_")), "_", ".")
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
