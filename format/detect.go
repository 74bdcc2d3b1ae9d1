// Package format provides file format detection for the slidewise library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PPTX indicates a Microsoft PowerPoint (.pptx) package.
	PPTX
	// ZIP indicates a ZIP archive that is not a recognized presentation
	// package.
	ZIP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PPTX:
		return "PPTX"
	case ZIP:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PPTX:
		return ".pptx"
	case ZIP:
		return ".zip"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pptx":
		return PPTX
	case ".zip":
		return ZIP
	default:
		return Unknown
	}
}

// zipMagic is the local-file-header signature every ZIP archive starts with.
var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// DetectBytes inspects content to determine format. More reliable than
// extension-based detection: a ZIP archive counts as PPTX only when it
// carries the presentation manifest part.
func DetectBytes(data []byte) Format {
	if !bytes.HasPrefix(data, zipMagic) {
		return Unknown
	}
	return detectZIPFormat(bytes.NewReader(data), int64(len(data)))
}

// DetectReader is DetectBytes over an io.ReaderAt.
func DetectReader(r io.ReaderAt, size int64) Format {
	magic := make([]byte, len(zipMagic))
	if n, err := r.ReadAt(magic, 0); err != nil && err != io.EOF || n < len(zipMagic) {
		return Unknown
	}
	if !bytes.Equal(magic, zipMagic) {
		return Unknown
	}
	return detectZIPFormat(r, size)
}

func detectZIPFormat(r io.ReaderAt, size int64) Format {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown
	}
	for _, f := range zr.File {
		if f.Name == "ppt/presentation.xml" {
			return PPTX
		}
	}
	return ZIP
}
