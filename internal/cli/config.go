package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/gitlanes/gitlanes/pkg/errors"
	"github.com/gitlanes/gitlanes/pkg/render"
)

// Cache backends selectable in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendMongo = "mongo"
	CacheBackendNone  = "none"
)

// Config is the TOML configuration loaded from
// ~/.config/gitlanes/config.toml. Every field has a working default; the
// file is optional.
type Config struct {
	Graph  GraphConfig  `toml:"graph"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// GraphConfig controls projection geometry and the branch color palette.
type GraphConfig struct {
	BaseOffset  float64  `toml:"base_offset"`
	LaneSpacing float64  `toml:"lane_spacing"`
	RowSpacing  float64  `toml:"row_spacing"`
	NodeRadius  float64  `toml:"node_radius"`
	Palette     []string `toml:"palette"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file (default), redis, mongo, none
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	MongoURI      string `toml:"mongo_uri"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{
			BaseOffset:  render.DefaultGeometry.BaseOffset,
			LaneSpacing: render.DefaultGeometry.LaneSpacing,
			RowSpacing:  render.DefaultGeometry.RowSpacing,
			NodeRadius:  render.DefaultGeometry.NodeRadius,
		},
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
		Server: ServerConfig{
			Addr: "localhost:8643",
		},
	}
}

// LoadConfig reads the TOML config at path, layered over the defaults.
// A missing file is not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendMongo, CacheBackendNone:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig,
			"invalid cache backend: %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	return nil
}

// Geometry converts the graph config into projection geometry.
func (c Config) Geometry() render.Geometry {
	geo := render.DefaultGeometry
	if c.Graph.BaseOffset > 0 {
		geo.BaseOffset = c.Graph.BaseOffset
	}
	if c.Graph.LaneSpacing > 0 {
		geo.LaneSpacing = c.Graph.LaneSpacing
	}
	if c.Graph.RowSpacing > 0 {
		geo.RowSpacing = c.Graph.RowSpacing
	}
	if c.Graph.NodeRadius > 0 {
		geo.NodeRadius = c.Graph.NodeRadius
	}
	return geo
}
