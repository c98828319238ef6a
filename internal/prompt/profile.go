// Package prompt builds model instructions around the portfolio profile.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// Profile is the static portfolio document every prompt is grounded in. It is
// loaded once at startup and shared read-only.
type Profile struct {
	Owner struct {
		FullName  string `yaml:"full_name"`
		ShortName string `yaml:"short_name"`
	} `yaml:"owner"`
	Assistant    string        `yaml:"assistant"`
	Skills       []SkillGroup  `yaml:"skills"`
	Projects     []Project     `yaml:"projects"`
	Achievements []string      `yaml:"achievements"`
	Publications []Publication `yaml:"publications"`
	Contact      []ContactLink `yaml:"contact"`
}

type SkillGroup struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

type Project struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
}

type Publication struct {
	Title  string `yaml:"title"`
	Source string `yaml:"source"`
}

type ContactLink struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// LoadProfile reads the profile at path, or the built-in profile when path
// is empty.
func LoadProfile(path string) (*Profile, error) {
	data := defaultProfile
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile: %w", err)
		}
		data = b
	}
	return ParseProfile(data)
}

func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if strings.TrimSpace(p.Owner.FullName) == "" {
		return nil, errors.New("profile: owner.full_name is required")
	}
	if p.Owner.ShortName == "" {
		p.Owner.ShortName = strings.Fields(p.Owner.FullName)[0]
	}
	if p.Assistant == "" {
		p.Assistant = "Axion"
	}
	return &p, nil
}

// OwnerName is the short first-person name used in emails and replies.
func (p *Profile) OwnerName() string {
	return p.Owner.ShortName
}
