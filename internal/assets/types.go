package assets

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// CharacterMeta describes one character entry of chara_meta.yml.
type CharacterMeta struct {
	FullName     string `yaml:"full_name" json:"full_name"`
	EmotionCount uint32 `yaml:"emotion_count" json:"emotion_count"`
	Font         string `yaml:"font" json:"font"`
}

// BackgroundVariant is an alternate rendering of a background.
type BackgroundVariant struct {
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}

// Background describes one background scene and its variants.
type Background struct {
	Name     string                       `yaml:"name" json:"name"`
	File     string                       `yaml:"file" json:"file"`
	Variants map[string]BackgroundVariant `yaml:"variants" json:"variants"`
}

// Font references a font asset.
type Font struct {
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}

// TextConfigItem is a single positioned text overlay.
type TextConfigItem struct {
	Text      string   `yaml:"text" json:"text"`
	Position  [2]int32 `yaml:"position" json:"position"`
	FontColor [3]uint8 `yaml:"font_color" json:"font_color"`
	FontSize  float32  `yaml:"font_size" json:"font_size"`
}

// AppConfig is the aggregate snapshot of all four documents.
type AppConfig struct {
	Characters  map[string]CharacterMeta    `json:"characters"`
	Backgrounds map[string]Background       `json:"backgrounds"`
	Fonts       map[string]Font             `json:"fonts"`
	TextConfigs map[string][]TextConfigItem `json:"text_configs"`
}

// Summary holds the number of entries per document.
type Summary struct {
	Characters  int
	Backgrounds int
	Fonts       int
	TextConfigs int
}

// Summary counts the entries of each mapping.
func (c *AppConfig) Summary() Summary {
	if c == nil {
		return Summary{}
	}
	return Summary{
		Characters:  len(c.Characters),
		Backgrounds: len(c.Backgrounds),
		Fonts:       len(c.Fonts),
		TextConfigs: len(c.TextConfigs),
	}
}

func (c *CharacterMeta) UnmarshalYAML(node *yaml.Node) error {
	type plain CharacterMeta
	if err := decodeRequired(node, (*plain)(c), "full_name", "emotion_count", "font"); err != nil {
		return err
	}
	return requireIntegers(node, "emotion_count")
}

func (v *BackgroundVariant) UnmarshalYAML(node *yaml.Node) error {
	type plain BackgroundVariant
	return decodeRequired(node, (*plain)(v), "name", "file")
}

func (b *Background) UnmarshalYAML(node *yaml.Node) error {
	type plain Background
	if err := decodeRequired(node, (*plain)(b), "name", "file"); err != nil {
		return err
	}
	if b.Variants == nil {
		b.Variants = map[string]BackgroundVariant{}
	}
	return nil
}

func (f *Font) UnmarshalYAML(node *yaml.Node) error {
	type plain Font
	return decodeRequired(node, (*plain)(f), "name", "file")
}

func (t *TextConfigItem) UnmarshalYAML(node *yaml.Node) error {
	type plain TextConfigItem
	if err := decodeRequired(node, (*plain)(t), "text", "position", "font_color", "font_size"); err != nil {
		return err
	}
	return requireIntegers(node, "position", "font_color")
}

// decodeRequired decodes a mapping node into out after checking that every
// listed key is present with a non-null value. Unknown keys are ignored.
func decodeRequired(node *yaml.Node, out any, fields ...string) error {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping, got %s", node.Line, node.ShortTag())
	}

	present := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		present[node.Content[i].Value] = !isNull(node.Content[i+1])
	}
	for _, field := range fields {
		if !present[field] {
			return &MissingFieldError{Field: field, Line: node.Line}
		}
	}

	return node.Decode(out)
}

// requireIntegers checks that the listed keys hold !!int scalars or sequences
// of them. yaml.v3 truncates floats into integer fields otherwise.
func requireIntegers(node *yaml.Node, fields ...string) error {
	node = resolveAlias(node)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !slices.Contains(fields, key) {
			continue
		}
		value := resolveAlias(node.Content[i+1])
		items := []*yaml.Node{value}
		if value.Kind == yaml.SequenceNode {
			items = value.Content
		}
		for _, item := range items {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!int" {
				return fmt.Errorf("line %d: field %q: cannot use %s %q as an integer", item.Line, key, item.ShortTag(), item.Value)
			}
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		return node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	if node == nil {
		return true
	}
	node = resolveAlias(node)
	return node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}
