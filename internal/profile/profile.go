// Package profile fetches the storefront's business profile and feeds its
// brand color to the palette.
package profile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoBaseColor is returned when a profile carries no brand color.
var ErrNoBaseColor = errors.New("profile has no base color")

// Profile is the part of the business profile the engine consumes.
type Profile struct {
	Name      string `json:"name" yaml:"name"`
	BaseColor string `json:"baseColor" yaml:"base_color"`
	Logo      string `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// Source produces the current profile.
type Source interface {
	Fetch(ctx context.Context) (Profile, error)
	// Kind names the source for logs and spans.
	Kind() string
}

// FileSource reads a profile from a YAML file on every fetch.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Kind() string { return "file" }

func (s *FileSource) Fetch(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parsing profile %s: %w", s.path, err)
	}
	if p.BaseColor == "" {
		return Profile{}, ErrNoBaseColor
	}
	return p, nil
}

// StaticSource always returns the same profile.
type StaticSource Profile

func (s StaticSource) Kind() string { return "static" }

func (s StaticSource) Fetch(ctx context.Context) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	if s.BaseColor == "" {
		return Profile{}, ErrNoBaseColor
	}
	return Profile(s), nil
}
