// Package util provides common utility functions
package util

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ParseFrontmatter extracts YAML frontmatter from content
// Returns the parsed YAML as a map, the body (content after frontmatter), and whether frontmatter exists
func ParseFrontmatter(content string) (yamlData map[string]interface{}, body string, hasFrontmatter bool) {
	if content == "" {
		return nil, content, false
	}

	// Check if content starts with frontmatter delimiter
	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") {
		return nil, content, false
	}

	// Find the closing delimiter
	rest := content[len(frontmatterDelimiter)+1:]
	endIndex := strings.Index(rest, "\n"+frontmatterDelimiter)
	if endIndex == -1 {
		return nil, content, false
	}

	// Extract frontmatter YAML
	yamlContent := rest[:endIndex]
	body = rest[endIndex+len("\n"+frontmatterDelimiter):]

	// Remove leading newline from body if present
	if strings.HasPrefix(body, "\n") {
		body = body[1:]
	}

	// Parse YAML
	yamlData = make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(yamlContent), &yamlData); err != nil {
		// If YAML parsing fails, return as if no frontmatter
		return nil, content, false
	}

	return yamlData, body, true
}

// Field is one ordered frontmatter line
// Field 一行有序的 frontmatter
type Field struct {
	Key   string
	Value string
}

// RenderFrontmatter writes fields verbatim as "key: value" lines between
// delimiters, followed by a blank line and body
// RenderFrontmatter 将字段按 "key: value" 原样写入分隔符之间，随后空一行接正文
func RenderFrontmatter(fields []Field, body string) string {
	var sb strings.Builder
	sb.WriteString(frontmatterDelimiter)
	sb.WriteString("\n")
	for _, f := range fields {
		sb.WriteString(f.Key)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
		sb.WriteString("\n")
	}
	sb.WriteString(frontmatterDelimiter)
	sb.WriteString("\n\n")
	sb.WriteString(body)
	return sb.String()
}
