package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Pg                 Pg            `yaml:"pg"`
	JwtTTL             time.Duration `yaml:"jwt_ttl"`
	Port               int           `yaml:"port"`
	LogLevel           string        `yaml:"log_level"`
	LogJSON            bool          `yaml:"log_json"`
	MediaRoot          string        `yaml:"media_root"`     // local object-store directory for hero images
	MediaBaseUrl       string        `yaml:"media_base_url"` // public prefix of stored image URLs
	CorsAllowedOrigins []string      `yaml:"cors_allowed_origins"`
	SecureCookies      bool          `yaml:"secure_cookies"`
	MaxHeroImageSize   int64         `yaml:"max_hero_image_size"` // bytes
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	// AdminWallet is the statically configured admin address; a user whose
	// stored role is admin passes the gate as well.
	AdminWallet string `yaml:"admin_wallet"`
	// Bootstrap credentials for the first local admin account.
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
}

func (s *Config) JwtKey() string {
	return s.private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (s *Config) AdminWallet() string {
	return s.private.AdminWallet
}

func (s *Config) AdminCredentials() (string, string) {
	return s.private.AdminUsername, s.private.AdminPassword
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}

// NewForTesting builds a config without touching the filesystem.
func NewForTesting(public Public, private Private) *Config {
	return &Config{public, private}
}
