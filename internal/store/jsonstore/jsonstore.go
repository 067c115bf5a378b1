package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/aliabb01/lineup/internal/model"
	"github.com/aliabb01/lineup/internal/reorder"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking for v1; fine for a local single-user CLI.

const dataFileName = "lineup.json"

// DefaultPath is the list file in the current working directory.
func DefaultPath() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, dataFileName), nil
}

func Load() ([]model.Item, error) {
	p, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(p)
}

// LoadFrom reads items from path. A missing file is an empty list. Items
// without an id (hand-edited files) get one assigned; duplicate ids are
// rejected here so they can never reach a reorder.
func LoadFrom(path string) ([]model.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Item{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
	if dups := reorder.DuplicateIDs(items, model.ItemID); dups != nil {
		return nil, fmt.Errorf("duplicate item ids in %s: %s", path, strings.Join(dups, ", "))
	}
	return items, nil
}

func Save(items []model.Item) error {
	p, err := DefaultPath()
	if err != nil {
		return err
	}
	return SaveTo(p, items)
}

func SaveTo(path string, items []model.Item) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
