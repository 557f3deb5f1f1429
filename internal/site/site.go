// Package site loads the static site settings file: name, contact details,
// social links and per-locale taglines.
package site

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the decoded site file.
type Settings struct {
	Name     string            `yaml:"name"`
	Short    string            `yaml:"short_name"`
	Logo     string            `yaml:"logo"`
	Tagline  map[string]string `yaml:"tagline"`
	Contact  Contact           `yaml:"contact"`
	Social   []SocialLink      `yaml:"social"`
	Footer   map[string]string `yaml:"footer"`
	Keywords []string          `yaml:"keywords"`
}

type Contact struct {
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Default is used when no site file exists.
func Default() Settings {
	return Settings{
		Name:  "ESSE",
		Short: "ESSE",
		Tagline: map[string]string{
			"fr": "Laboratoire de recherche",
			"en": "Research laboratory",
		},
	}
}

// Load reads the YAML file at path. A missing file yields Default.
func Load(path string) (Settings, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, fmt.Errorf("site: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes raw YAML on top of Default.
func Parse(raw []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("site: decode: %w", err)
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = Default().Name
	}
	if s.Short == "" {
		s.Short = s.Name
	}
	return s, nil
}

// TaglineFor returns the tagline for lang, falling back to French.
func (s Settings) TaglineFor(lang string) string {
	if v := s.Tagline[lang]; v != "" {
		return v
	}
	return s.Tagline["fr"]
}

// FooterFor returns the footer note for lang, falling back to French.
func (s Settings) FooterFor(lang string) string {
	if v := s.Footer[lang]; v != "" {
		return v
	}
	return s.Footer["fr"]
}
