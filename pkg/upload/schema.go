package upload

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.yaml
var embeddedSchemas embed.FS

const defaultSchemaPath = "schemas/trendminer-item.yaml"

// Schema describes the XML layout an uploaded document must follow: the root
// element name and the rules for its direct children.
type Schema struct {
	Name string `yaml:"name"`
	Root string `yaml:"root"`
	// Strict rejects children that have no rule.
	Strict   bool          `yaml:"strict"`
	Elements []ElementRule `yaml:"elements"`

	rules map[string]*compiledRule
}

// ElementRule constrains one child element of the root.
type ElementRule struct {
	Name       string `yaml:"name"`
	Required   bool   `yaml:"required"`
	Repeatable bool   `yaml:"repeatable"`
	// Pattern is matched against the trimmed text of non-empty elements.
	Pattern string `yaml:"pattern"`
}

type compiledRule struct {
	ElementRule
	pattern *regexp.Regexp
}

// ParseSchema decodes a YAML schema document and compiles its patterns.
func ParseSchema(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("upload: parse schema: %w", err)
	}
	if err := schema.compile(); err != nil {
		return nil, err
	}
	return &schema, nil
}

// LoadSchema reads and parses the schema file at path.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("upload: read schema %s: %w", path, err)
	}
	schema, err := ParseSchema(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return schema, nil
}

var (
	defaultSchemaOnce sync.Once
	defaultSchema     *Schema
)

// DefaultSchema returns the embedded TrendMiner item schema.
func DefaultSchema() *Schema {
	defaultSchemaOnce.Do(func() {
		data, err := embeddedSchemas.ReadFile(defaultSchemaPath)
		if err != nil {
			panic(fmt.Sprintf("upload: embedded schema missing: %v", err))
		}
		schema, err := ParseSchema(data)
		if err != nil {
			panic(err)
		}
		defaultSchema = schema
	})
	return defaultSchema
}

func (s *Schema) compile() error {
	s.Root = strings.TrimSpace(s.Root)
	if s.Root == "" {
		return errors.New("upload: schema root element is required")
	}
	s.rules = make(map[string]*compiledRule, len(s.Elements))
	for i, rule := range s.Elements {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return fmt.Errorf("upload: schema element %d has no name", i)
		}
		if _, exists := s.rules[name]; exists {
			return fmt.Errorf("upload: schema defines element %q twice", name)
		}
		rule.Name = name
		compiled := &compiledRule{ElementRule: rule}
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return fmt.Errorf("upload: schema element %q pattern: %w", name, err)
			}
			compiled.pattern = re
		}
		s.rules[name] = compiled
		s.Elements[i] = rule
	}
	return nil
}

// Validate checks an XML document against the schema. The returned error
// joins every violation found.
func (s *Schema) Validate(data []byte) error {
	if s == nil || s.rules == nil {
		return errors.New("upload: schema not initialised")
	}
	root, children, err := parseShallow(data)
	if err != nil {
		return err
	}
	if root != s.Root {
		return fmt.Errorf("root element <%s>, want <%s>", root, s.Root)
	}

	var problems []error
	seen := make(map[string]int, len(children))
	for _, child := range children {
		seen[child.name]++
		rule, ok := s.rules[child.name]
		if !ok {
			if s.Strict {
				problems = append(problems, fmt.Errorf("unexpected element <%s>", child.name))
			}
			continue
		}
		if seen[child.name] == 2 && !rule.Repeatable {
			problems = append(problems, fmt.Errorf("element <%s> occurs more than once", child.name))
		}
		if rule.pattern != nil && child.text != "" && !rule.pattern.MatchString(child.text) {
			problems = append(problems, fmt.Errorf("element <%s> value %q does not match %s", child.name, child.text, rule.Pattern))
		}
	}
	for _, rule := range s.Elements {
		if !rule.Required {
			continue
		}
		if seen[rule.Name] == 0 {
			problems = append(problems, fmt.Errorf("missing required element <%s>", rule.Name))
			continue
		}
		if rule.Pattern != "" && emptyOnly(children, rule.Name) {
			problems = append(problems, fmt.Errorf("required element <%s> is empty", rule.Name))
		}
	}
	return errors.Join(problems...)
}

func emptyOnly(children []element, name string) bool {
	for _, child := range children {
		if child.name == name && child.text != "" {
			return false
		}
	}
	return true
}
