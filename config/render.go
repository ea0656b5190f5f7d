package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderDefaultYAML renders a YAML config with defaults from GetConfigOptions.
// Dotted keys become nested sections; each key carries its comment.
func RenderDefaultYAML() (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	sections := make(map[string]*yaml.Node)
	for _, o := range GetConfigOptions() {
		value := &yaml.Node{}
		if err := value.Encode(o.Default); err != nil {
			return "", fmt.Errorf("encoding default for %s: %w", o.Key, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: o.Key, HeadComment: "# " + o.Comment}

		section, name, nested := strings.Cut(o.Key, ".")
		if !nested {
			root.Content = append(root.Content, key, value)
			continue
		}
		key.Value = name
		m, ok := sections[section]
		if !ok {
			m = &yaml.Node{Kind: yaml.MappingNode}
			sections[section] = m
			root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: section}, m)
		}
		m.Content = append(m.Content, key, value)
	}

	var buf bytes.Buffer
	buf.WriteString("# ReportPipe configuration (YAML)\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return buf.String(), nil
}
