package assets

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Relative document locations under the resource directory.
const (
	CharactersFile  = "config/chara_meta.yml"
	BackgroundsFile = "config/backgrounds.yml"
	FontsFile       = "config/fonts.yml"
	TextConfigsFile = "config/text_configs.yml"
)

// Top-level wrapper keys of each document.
const (
	charactersKey  = "mahoshojo"
	backgroundsKey = "backgrounds"
	fontsKey       = "fonts"
	textConfigsKey = "text_configs"
)

// Load reads the four configuration documents below baseDir and returns the
// aggregate snapshot. The first failing document aborts the load; errors wrap
// ErrRead or ErrParse together with the underlying cause.
func Load(baseDir string) (*AppConfig, error) {
	characters, err := loadDocument[map[string]CharacterMeta](baseDir, CharactersFile, charactersKey)
	if err != nil {
		return nil, err
	}

	backgrounds, err := loadDocument[map[string]Background](baseDir, BackgroundsFile, backgroundsKey)
	if err != nil {
		return nil, err
	}

	fonts, err := loadDocument[map[string]Font](baseDir, FontsFile, fontsKey)
	if err != nil {
		return nil, err
	}

	textConfigs, err := loadDocument[map[string][]TextConfigItem](baseDir, TextConfigsFile, textConfigsKey)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Characters:  characters,
		Backgrounds: backgrounds,
		Fonts:       fonts,
		TextConfigs: textConfigs,
	}, nil
}

// loadDocument reads baseDir/rel, decodes it and returns the value stored
// under the single top-level key. The wrapper itself is discarded.
func loadDocument[T any](baseDir, rel, key string) (T, error) {
	var zero T

	path := filepath.Join(baseDir, filepath.FromSlash(rel))
	// #nosec G304 -- the resource directory is resolved by the host at startup
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrRead, err)
	}

	var root map[string]yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return zero, fmt.Errorf("%w %s: %w", ErrParse, rel, err)
	}

	node, ok := root[key]
	if !ok || isNull(&node) {
		return zero, fmt.Errorf("%w %s: %w", ErrParse, rel, &MissingFieldError{Field: key})
	}

	var out T
	if err := node.Decode(&out); err != nil {
		return zero, fmt.Errorf("%w %s: %w", ErrParse, rel, err)
	}
	return out, nil
}
