package parser

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hogwarts-cloud/profilectl/internal/models"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

var YAMLExtensions = []string{".yaml", ".yml"}

// Parse reads every parameter file under path. path may also name a single
// file. Fields missing from a file keep the value they have in defaults.
func Parse(path string, defaults models.RawParams) ([]models.RawParams, error) {
	params := make([]models.RawParams, 0)

	err := filepath.WalkDir(path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || !isYAML(path) {
			return nil
		}

		raw, err := parseParams(path, defaults)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		params = append(params, raw)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk through directory: %w", err)
	}

	return params, nil
}

func parseParams(path string, defaults models.RawParams) (models.RawParams, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return models.RawParams{}, fmt.Errorf("failed to read file: %w", err)
	}

	raw := defaults
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return models.RawParams{}, fmt.Errorf("failed to unmarshal params: %w", err)
	}

	if raw.Name == "" {
		raw.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	raw.Location = path

	return raw, nil
}

func isYAML(path string) bool {
	return lo.Contains(YAMLExtensions, filepath.Ext(path))
}
