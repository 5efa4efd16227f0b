// Package config loads the skill configuration deployed alongside the function.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pricofy/video-releases-skill/internal/catalog"
)

// FileName is the configuration file shipped in the deployment package.
const FileName = "config.json"

// DefaultCatalogTimeout bounds the catalog call; the platform gives the skill ~8s in total.
const DefaultCatalogTimeout = 5 * time.Second

// ErrConfiguration classifies every load failure (missing, unreadable or malformed file).
var ErrConfiguration = errors.New("configuration error")

// Config is the skill configuration. It is loaded on every invocation and never mutated.
type Config struct {
	AWS     AWSConfig     `json:"aws"`
	Alexa   AlexaConfig   `json:"alexa"`
	Search  SearchConfig  `json:"search"`
	Catalog CatalogConfig `json:"catalog"`
}

// AWSConfig holds the Product Advertising API credentials.
type AWSConfig struct {
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	// AdvertisingKey is the associate partner tag.
	AdvertisingKey string `json:"advertisingKey"`
	Region         string `json:"region,omitempty"`
	Host           string `json:"host,omitempty"`
	Marketplace    string `json:"marketplace,omitempty"`
}

// AlexaConfig restricts which skill may call the function.
type AlexaConfig struct {
	// AllowedAppID, when set, must equal the caller's application ID,
	// e.g. amzn1.echo-sdk-ams.app.[specific app id].
	AllowedAppID string `json:"allowedAppId"`
}

// SearchConfig names the catalog categories the skill browses.
type SearchConfig struct {
	Movies CategoryConfig `json:"movies"`
}

// CategoryConfig identifies a catalog browse node (movies: 2858905011).
type CategoryConfig struct {
	BrowseNodeID string `json:"browseNodeId"`
}

// CatalogConfig tunes the outbound catalog call.
type CatalogConfig struct {
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

// Path returns the configuration path under the function's task root.
func Path() string {
	return filepath.Join(os.Getenv("LAMBDA_TASK_ROOT"), FileName)
}

// Load reads and parses the configuration document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", ErrConfiguration, path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrConfiguration, path, err)
	}

	return &cfg, nil
}

// CategoryID is the browse node queried for new releases.
func (c *Config) CategoryID() string {
	return c.Search.Movies.BrowseNodeID
}

// CatalogOptions projects the catalog settings, filling defaults.
// Credential format is not validated here.
func (c *Config) CatalogOptions() catalog.Options {
	timeout := DefaultCatalogTimeout
	if c.Catalog.TimeoutSeconds > 0 {
		timeout = time.Duration(c.Catalog.TimeoutSeconds) * time.Second
	}

	opts := catalog.Options{
		AccessKey:   c.AWS.AccessKey,
		SecretKey:   c.AWS.SecretKey,
		PartnerTag:  c.AWS.AdvertisingKey,
		Host:        c.AWS.Host,
		Region:      c.AWS.Region,
		Marketplace: c.AWS.Marketplace,
		Timeout:     timeout,
	}
	if opts.Host == "" {
		opts.Host = catalog.DefaultHost
	}
	if opts.Region == "" {
		opts.Region = catalog.DefaultRegion
	}
	if opts.Marketplace == "" {
		opts.Marketplace = catalog.DefaultMarketplace
	}
	return opts
}
