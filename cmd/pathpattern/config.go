package main

import (
	"io/ioutil"
	"strings"

	env "github.com/jhunt/go-envirotron"
	"github.com/jhunt/go-log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	pattern "github.com/krew-solutions/ascetic-path-go/asceticpath/pattern/infrastructure"
)

type Route struct {
	Name         string            `yaml:"name"`
	Path         string            `yaml:"path"`
	Requirements map[string]string `yaml:"requirements"`
	Anchor       *bool             `yaml:"anchor"`
}

// Strexp applies the file-wide separators; routes are anchored unless the
// file says otherwise.
func (r Route) Strexp(separators []string) pattern.Strexp {
	var opts []pattern.StrexpOption
	if r.Anchor != nil && !*r.Anchor {
		opts = append(opts, pattern.Unanchored())
	}
	return pattern.NewStrexp(r.Path, r.Requirements, separators, opts...)
}

type Config struct {
	Separators []string `yaml:"separators"`
	CacheSize  int      `yaml:"cache_size" env:"PATHPATTERN_CACHE_SIZE"`
	Routes     []Route  `yaml:"routes"`
}

func ReadConfig(path string) (Config, error) {
	var config Config

	if path != "" {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return config, errors.Wrapf(err, "reading %s", path)
		}
		if err := yaml.Unmarshal(b, &config); err != nil {
			return config, errors.Wrapf(err, "parsing %s", path)
		}
		log.Debugf("loaded %d route(s) from %s", len(config.Routes), path)
	}

	env.Override(&config)

	if config.Separators == nil {
		config.Separators = strings.Split(pattern.DefaultSeparators, "")
	}
	if config.CacheSize <= 0 {
		config.CacheSize = 64
	}

	for i, route := range config.Routes {
		if route.Path == "" {
			return config, errors.Errorf("route #%d (%s) has no path", i+1, route.Name)
		}
		if route.Name == "" {
			config.Routes[i].Name = route.Path
		}
	}
	return config, nil
}

// ParseRequirements turns name=regexp pairs from the command line into a
// requirements map.
func ParseRequirements(pairs []string) (map[string]string, error) {
	requirements := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, re, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, errors.Errorf("invalid requirement '%s' (expected name=regexp)", pair)
		}
		requirements[strings.TrimPrefix(name, ":")] = re
	}
	return requirements, nil
}
