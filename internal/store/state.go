package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"CycleSentinel/internal/model"
)

// LoadState reads the last analysis result from a JSON file. Returns nil if
// the file doesn't exist.
func LoadState(filePath string) (*model.AnalysisResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var res model.AnalysisResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", filePath, err)
	}
	return &res, nil
}

// SaveState writes res to filePath through a temp file and rename, so readers
// never see a partial document.
func SaveState(filePath string, res *model.AnalysisResult) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
