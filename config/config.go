// Package config holds the process wide settings of the matcher and the
// sample service. Defaults come from struct tags and can be overlaid by a
// TOML file.
package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	defaults "github.com/mcuadros/go-defaults"
)

// Config is the active configuration. It is replaced by LoadDefaultConfig
// and LoadConfig. Code that may run before either was called reads it
// through Current.
var Config *ConfigType

// mu guards assignments to Config made by this package.
var mu sync.RWMutex

var ErrInvalidConfig = errors.New("invalid configuration")

type ConfigType struct {
	// Workers bounds the number of goroutines used for gallery searches.
	Workers  int            `toml:"workers" default:"1"`
	Matching MatchingConfig `toml:"matching"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
	Redis    RedisConfig    `toml:"redis"`
}

type MatchingConfig struct {
	MaxDistanceError   int     `toml:"max_distance_error" default:"13"`
	MaxAngleError      float64 `toml:"max_angle_error" default:"10"` // degrees
	EdgeTableNeighbors int     `toml:"edge_table_neighbors" default:"9"`
	MinRootEdgeLength  int     `toml:"min_root_edge_length" default:"58"`
	MaxRootEdgeLookups int     `toml:"max_root_edge_lookups" default:"1633"`
	MaxTriedRoots      int     `toml:"max_tried_roots" default:"70"`
	MinSupportingEdges int     `toml:"min_supporting_edges" default:"1"`

	DistanceErrorFlatness float64 `toml:"distance_error_flatness" default:"0.69"`
	AngleErrorFlatness    float64 `toml:"angle_error_flatness" default:"0.27"`
	MinutiaScore          float64 `toml:"minutia_score" default:"0.032"`
	MinutiaFractionScore  float64 `toml:"minutia_fraction_score" default:"8.98"`
	MinutiaTypeScore      float64 `toml:"minutia_type_score" default:"0.629"`
	SupportedMinutiaScore float64 `toml:"supported_minutia_score" default:"0.193"`
	EdgeScore             float64 `toml:"edge_score" default:"0.265"`
	DistanceAccuracyScore float64 `toml:"distance_accuracy_score" default:"9.9"`
	AngleAccuracyScore    float64 `toml:"angle_accuracy_score" default:"2.79"`

	// Threshold is the shaped score at which the sample service reports a
	// match. 40 corresponds to a false match rate of roughly 0.01%.
	Threshold float64 `toml:"threshold" default:"40"`
}

type ServerConfig struct {
	Address     string `toml:"address" default:":9090"`
	BodyLimitMB int    `toml:"body_limit_mb" default:"8"`
}

type LogConfig struct {
	// Path is a strftime pattern for rotated files. Empty logs to stdout.
	Path     string `toml:"path"`
	Link     string `toml:"link"`
	Rotation string `toml:"rotation" default:"24h"`
	MaxAge   string `toml:"max_age" default:"168h"`
}

type RedisConfig struct {
	// Addr selects the Redis gallery. Empty keeps the gallery in memory.
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key" default:"sourceafis:gallery"`
}

// New returns a configuration populated from the default tags.
func New() *ConfigType {
	c := new(ConfigType)
	defaults.SetDefaults(&c.Matching)
	defaults.SetDefaults(&c.Server)
	defaults.SetDefaults(&c.Log)
	defaults.SetDefaults(&c.Redis)
	defaults.SetDefaults(c)
	return c
}

func LoadDefaultConfig() {
	c := New()
	mu.Lock()
	Config = c
	mu.Unlock()
}

// LoadConfig reads a TOML file on top of the defaults and makes it the
// active configuration.
func LoadConfig(path string) error {
	c := New()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	mu.Lock()
	Config = c
	mu.Unlock()
	return nil
}

// Parse decodes TOML text on top of the defaults without touching Config.
func Parse(data string) (*ConfigType, error) {
	c := New()
	if _, err := toml.Decode(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *ConfigType) Validate() error {
	m := c.Matching
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	case m.MaxDistanceError < 1:
		return fmt.Errorf("%w: max_distance_error must be positive", ErrInvalidConfig)
	case m.MaxAngleError <= 0 || m.MaxAngleError > 60:
		return fmt.Errorf("%w: max_angle_error must be in (0, 60] degrees", ErrInvalidConfig)
	case m.EdgeTableNeighbors < 1:
		return fmt.Errorf("%w: edge_table_neighbors must be positive", ErrInvalidConfig)
	case m.MaxRootEdgeLookups < 1 || m.MaxTriedRoots < 1:
		return fmt.Errorf("%w: root enumeration caps must be positive", ErrInvalidConfig)
	}
	if _, err := time.ParseDuration(c.Log.Rotation); err != nil {
		return fmt.Errorf("%w: log rotation: %v", ErrInvalidConfig, err)
	}
	if _, err := time.ParseDuration(c.Log.MaxAge); err != nil {
		return fmt.Errorf("%w: log max_age: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Current returns Config, loading the defaults first if nothing was loaded.
// It is safe to call from many goroutines.
func Current() *ConfigType {
	mu.RLock()
	c := Config
	mu.RUnlock()
	if c != nil {
		return c
	}
	mu.Lock()
	defer mu.Unlock()
	if Config == nil {
		Config = New()
	}
	return Config
}
