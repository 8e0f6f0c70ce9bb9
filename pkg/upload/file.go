package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	extZip = ".zip"
	extXML = ".xml"

	// metadataMember is skipped inside archives.
	metadataMember = "om.xml"
)

// File is an uploaded document held in memory.
type File struct {
	Name    string
	Size    int64
	Content []byte

	// maxExpanded caps the bytes extracted from an archive upload. Pipeline
	// sets it from WithMaxExpandedSize.
	maxExpanded int64
}

// NewFile wraps content under name, deriving Size from the content length.
func NewFile(name string, content []byte) File {
	return File{Name: name, Size: int64(len(content)), Content: content}
}

// FileFromPath reads the file at path.
func FileFromPath(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("upload: read %s: %w", path, err)
	}
	return NewFile(filepath.Base(path), data), nil
}

// Ext returns the lower-cased extension of the file name, including the dot.
func (f File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// IsZip reports whether the file is named as a zip archive.
func (f File) IsZip() bool {
	return f.Ext() == extZip
}

func (f File) expansionLimit() int64 {
	if f.maxExpanded > 0 {
		return f.maxExpanded
	}
	return DefaultExpansionRatio * DefaultMaxUploadSize
}

// IsXML reports whether the file is named as an XML document.
func (f File) IsXML() bool {
	return f.Ext() == extXML
}
