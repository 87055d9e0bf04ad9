// Package config loads the streamforge-server configuration.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "streamforge-server.yaml"

type Server struct {
	RedisAddr     string   `yaml:"redis_address"`
	RedisDB       int      `yaml:"redis_db"`
	ListenAddr    string   `yaml:"listen_address"`
	Port          string   `yaml:"port"`
	PublicHost    string   `yaml:"public_host"` // reverse proxy host; trusted and allowed as dev origin
	SessionSecret string   `yaml:"session_secret"`
	Chat          Chat     `yaml:"chat"`
	Projects      Projects `yaml:"projects"`

	IsDev bool `yaml:"-"` // ENV=dev
}

type Chat struct {
	APIKey            string        `yaml:"api_key"`
	Model             string        `yaml:"model"`
	SystemInstruction string        `yaml:"system_instruction"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxConcurrent     int           `yaml:"max_concurrent"`
	Offline           bool          `yaml:"offline"` // canned answers only
}

// Projects bounds the per-workspace project stores held in memory.
type Projects struct {
	MaxOpenStores int           `yaml:"max_open_stores"`
	StoreIdleTTL  time.Duration `yaml:"store_idle_ttl"`
}

func defaults() Server {
	return Server{
		RedisAddr:  "localhost:6379",
		ListenAddr: "127.0.0.1",
		Port:       "8080",
		Chat: Chat{
			Timeout:       45 * time.Second,
			MaxConcurrent: 16,
		},
		Projects: Projects{
			MaxOpenStores: 1024,
			StoreIdleTTL:  15 * time.Minute,
		},
	}
}

// Load reads path over the defaults and applies environment overrides:
// ENV=dev, GEMINI_API_KEY, STREAMFORGE_REDIS_ADDR, STREAMFORGE_SESSION_SECRET.
// A missing file at DefaultPath is not an error.
func Load(path string) (*Server, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return nil, err
	}

	cfg.IsDev = os.Getenv("ENV") == "dev"
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Chat.APIKey = v
	}
	if v := os.Getenv("STREAMFORGE_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("STREAMFORGE_SESSION_SECRET"); v != "" {
		cfg.SessionSecret = v
	}

	if cfg.SessionSecret == "" && cfg.IsDev {
		// sessions do not survive a restart in dev
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("dev session secret: %w", err)
		}
		cfg.SessionSecret = base64.StdEncoding.EncodeToString(b)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr is the listen address of the HTTP server.
func (s *Server) Addr() string { return s.ListenAddr + ":" + s.Port }

func (s *Server) validate() error {
	var errs []error
	if s.RedisAddr == "" {
		errs = append(errs, errors.New("redis_address is required"))
	}
	if s.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if len(s.SessionSecret) < 32 {
		errs = append(errs, errors.New("session_secret must be at least 32 bytes"))
	}
	if s.Chat.Timeout <= 0 {
		errs = append(errs, errors.New("chat.timeout must be positive"))
	}
	if s.Chat.MaxConcurrent < 1 {
		errs = append(errs, errors.New("chat.max_concurrent must be at least 1"))
	}
	if s.Projects.MaxOpenStores < 1 {
		errs = append(errs, errors.New("projects.max_open_stores must be at least 1"))
	}
	if s.Projects.StoreIdleTTL <= 0 {
		errs = append(errs, errors.New("projects.store_idle_ttl must be positive"))
	}
	return errors.Join(errs...)
}
