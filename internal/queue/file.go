// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/akhsjain/tech-blogs/pkg/types"
)

// FileStore keeps the queue in a single file that is read and written
// wholesale. Files ending in .yaml or .yml hold a YAML sequence; any other
// name holds a JSON array indented with two spaces.
type FileStore struct {
	Fs   afero.Fs
	Path string
}

// NewFileStore returns a FileStore over the OS filesystem.
func NewFileStore(path string) *FileStore {
	return &FileStore{Fs: afero.NewOsFs(), Path: path}
}

// Load reads and parses the whole queue file.
func (s *FileStore) Load(_ context.Context) ([]types.Topic, error) {
	data, err := afero.ReadFile(s.Fs, s.Path)
	if err != nil {
		return nil, &types.StorageError{Op: "read", Path: s.Path, Err: err}
	}

	var topics []types.Topic
	if s.isYAML() {
		err = yaml.Unmarshal(data, &topics)
	} else {
		err = json.Unmarshal(data, &topics)
	}
	if err != nil {
		return nil, &types.StorageError{Op: "parse", Path: s.Path, Err: err}
	}
	if topics == nil {
		topics = []types.Topic{}
	}
	return topics, nil
}

// Persist overwrites the queue file with topics.
func (s *FileStore) Persist(_ context.Context, topics []types.Topic) error {
	if topics == nil {
		topics = []types.Topic{}
	}

	data, err := s.encode(topics)
	if err != nil {
		return &types.StorageError{Op: "encode", Path: s.Path, Err: err}
	}
	if err := afero.WriteFile(s.Fs, s.Path, data, 0o644); err != nil {
		return &types.StorageError{Op: "write", Path: s.Path, Err: err}
	}
	return nil
}

func (s *FileStore) encode(topics []types.Topic) ([]byte, error) {
	if s.isYAML() {
		data, err := yaml.Marshal(topics)
		if err != nil {
			return nil, fmt.Errorf("marshaling yaml: %w", err)
		}
		return data, nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(topics); err != nil {
		return nil, fmt.Errorf("marshaling json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (s *FileStore) isYAML() bool {
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
