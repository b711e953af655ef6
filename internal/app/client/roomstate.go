package client

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// FileState persists the active room binding as a single small file. Absence
// of the file means no binding.
type FileState struct {
	path string
}

func NewFileState(path string) *FileState {
	return &FileState{path: path}
}

func (s *FileState) ActiveRoom() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileState) SetActiveRoom(code string) error {
	return os.WriteFile(s.path, []byte(code+"\n"), 0600)
}

func (s *FileState) ClearActiveRoom() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
