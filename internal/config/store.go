package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/expressjet/expressjet/internal/defs"
)

const fileType = "yaml"

// DefaultPath returns the user defaults file (~/.expressjet/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", defs.ConfigHomeDir, defs.ConfigFileName)
	}
	return filepath.Join(home, defs.ConfigHomeDir, defs.ConfigFileName)
}

// Store holds the user's scaffold defaults. Values come from the defaults
// file, overridden by EXPRESSJET_* environment variables.
// It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
}

// NewStore creates a Store backed by the file at path. Call Load before
// reading values from the file.
func NewStore(path string) *Store {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(defs.EnvPrefix)
	v.AutomaticEnv()
	return &Store{v: v, path: path}
}

// Path returns the defaults file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the defaults file. A missing file is not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	var parseErr viper.ConfigParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %s: %v", ErrInvalidYAML, s.path, err)
	}
	return fmt.Errorf("read defaults %s: %w", s.path, err)
}

// Get returns the value for key, or an empty string if it is not set.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.GetString(key)
}

// Input returns the stored defaults as a resolver layer.
func (s *Store) Input() Input {
	s.mu.RLock()
	defer s.mu.RUnlock()

	in := Input{
		PackageManager: s.v.GetString(KeyPackageManager),
		ModuleSystem:   s.v.GetString(KeyModuleSystem),
	}
	if s.v.IsSet(KeyIncludeAuth) {
		in.IncludeAuth = Bool(s.v.GetBool(KeyIncludeAuth))
	}
	return in
}

// Set validates and stores a default, then writes the defaults file.
func (s *Store) Set(key, value string) error {
	normalized, err := ValidateKey(key, value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
		return fmt.Errorf("create config directory %s: %w", dir, err)
	}

	if key == KeyIncludeAuth {
		s.v.Set(key, normalized == "true")
	} else {
		s.v.Set(key, normalized)
	}

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write defaults %s: %w", s.path, err)
	}
	return nil
}
