package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/automock/pkg/automock"
	"github.com/getmockd/automock/pkg/graphql"
)

// Build loads the schema cfg names and converts the rest of cfg into
// provider options.
func Build(cfg *Config) (*graphql.Schema, []automock.Option, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("%w: configuration is nil", ErrInvalidConfig)
	}

	schema, err := LoadSchema(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts, err := Options(cfg)
	if err != nil {
		return nil, nil, err
	}
	return schema, opts, nil
}

// SchemaPaths returns the SDL files cfg names, globs expanded, in load order.
func SchemaPaths(cfg *Config) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	if cfg.Schema != "" {
		add(ResolvePath(cfg.BaseDir, cfg.Schema))
	}
	for _, pattern := range cfg.SchemaFiles {
		matches, err := expandPattern(ResolvePath(cfg.BaseDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("schemaFiles %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: schemaFiles %q matched no files", ErrInvalidConfig, pattern)
		}
		for _, m := range matches {
			add(m)
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no schema configured", ErrInvalidConfig)
	}
	return paths, nil
}

// LoadSchema parses and checks the schema cfg names.
func LoadSchema(cfg *Config) (*graphql.Schema, error) {
	paths, err := SchemaPaths(cfg)
	if err != nil {
		return nil, err
	}

	schema, err := graphql.ParseSchemaFiles(paths...)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return schema, nil
}

// Options converts everything but the schema into provider options.
func Options(cfg *Config) ([]automock.Option, error) {
	var opts []automock.Option

	if cfg.AddTypename != nil {
		opts = append(opts, automock.WithAddTypename(*cfg.AddTypename))
	}
	if cfg.ListLength != nil {
		if *cfg.ListLength < 0 {
			return nil, fmt.Errorf("%w: listLength must not be negative", ErrInvalidConfig)
		}
		opts = append(opts, automock.WithListLength(*cfg.ListLength))
	}

	mocks, err := Mocks(cfg)
	if err != nil {
		return nil, err
	}
	if len(mocks) > 0 {
		opts = append(opts, automock.WithMocks(mocks))
	}

	if len(cfg.CopyFieldsFromVariables) > 0 {
		rules := make(automock.CopyFieldsFromVariables, len(cfg.CopyFieldsFromVariables))
		for name, r := range cfg.CopyFieldsFromVariables {
			rules[name] = automock.CopyRules(r)
		}
		opts = append(opts, automock.WithCopyFieldsFromVariables(rules))
	}

	return opts, nil
}

// Mocks compiles cfg's mocks. Files listed in MockFiles are merged in
// order and inline mocks are applied last; a later entry for an operation
// replaces an earlier one.
func Mocks(cfg *Config) (automock.MockMap, error) {
	entries := make(map[string]map[string]interface{})

	for _, pattern := range cfg.MockFiles {
		matches, err := expandPattern(ResolvePath(cfg.BaseDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("mockFiles %q: %w", pattern, err)
		}
		for _, path := range matches {
			fileMocks, err := loadMockFile(path)
			if err != nil {
				return nil, err
			}
			for name, entry := range fileMocks {
				entries[name] = entry
			}
		}
	}
	for name, entry := range cfg.Mocks {
		entries[name] = entry
	}

	if len(entries) == 0 {
		return nil, nil
	}

	mocks := make(automock.MockMap, len(entries))
	for name, entry := range entries {
		if src, ok := exprSource(entry); ok {
			m, err := CompileExprMock(src)
			if err != nil {
				return nil, fmt.Errorf("%w: mock %q: %v", ErrInvalidConfig, name, err)
			}
			mocks[name] = m
			continue
		}
		mocks[name] = automock.Literal(entry)
	}
	return mocks, nil
}

func loadMockFile(path string) (map[string]map[string]interface{}, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	expanded := []byte(ExpandEnvVars(string(data)))
	format := FormatForPath(path)

	doc, err := decodeGeneric(expanded, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := validateMockFile(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var file mockFile
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(expanded, &file)
	default:
		err = json.Unmarshal(expanded, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrInvalidConfig, err)
	}
	return file.Mocks, nil
}

// expandPattern expands a glob pattern to a sorted list of file paths.
// Patterns without glob characters are returned as is.
func expandPattern(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expanding glob pattern: %w", err)
	}
	for i, m := range matches {
		matches[i] = filepath.Clean(m)
	}
	sort.Strings(matches)
	return matches, nil
}
