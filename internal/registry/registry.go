// Package registry loads the category definitions that drive a sorting run.
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/picsort/internal/common"
	"github.com/Veraticus/picsort/internal/model"
)

// Definition is one entry of the category definition file.
type Definition struct {
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	FolderName  string `json:"folder_name" yaml:"folder_name"`
}

// Load reads a definition file and returns the validated category set. JSON
// is the default; .yaml and .yml files are parsed as YAML. Every failure is
// a *common.ConfigError.
func Load(path string) (*model.CategorySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.NewConfigError(path, fmt.Errorf("%w: file does not exist", common.ErrNotFound))
		}
		return nil, common.NewConfigError(path, err)
	}

	var defs []Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		defs, err = decodeYAML(data)
	default:
		defs, err = decodeJSON(data)
	}
	if err != nil {
		return nil, common.NewConfigError(path, err)
	}

	set, err := Build(defs)
	if err != nil {
		return nil, common.NewConfigError(path, err)
	}
	return set, nil
}

// Build converts parsed definitions into a category set.
func Build(defs []Definition) (*model.CategorySet, error) {
	cats := make([]model.Category, len(defs))
	for i, def := range defs {
		cats[i] = model.Category{
			Name:        def.Category,
			Description: def.Description,
			Folder:      def.FolderName,
		}
	}
	return model.NewCategorySet(cats)
}

func decodeJSON(data []byte) ([]Definition, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var defs []Definition
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("malformed JSON: trailing data after category list")
	}
	return defs, nil
}

func decodeYAML(data []byte) ([]Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var defs []Definition
	if err := dec.Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("malformed YAML: %w", err)
	}
	return defs, nil
}
