package ast

import (
	"fmt"
	"sort"
)

// FileInfo maps byte offsets in a source file to line and column
// positions. The line index is built once, up front, so that a
// backtracking matcher can resolve positions for arbitrary offsets in
// any order.
type FileInfo struct {
	name string
	data []byte
	// The zero-based byte offset at which each line begins. The value
	// at index 0 is always zero; the value at index 1 is the offset at
	// which the second line begins, and so on.
	lines []int
}

// NewFileInfo creates position info for the given file contents.
func NewFileInfo(filename string, contents []byte) *FileInfo {
	info := &FileInfo{
		name:  filename,
		data:  contents,
		lines: []int{0},
	}
	for i, c := range contents {
		if c == '\n' {
			info.lines = append(info.lines, i+1)
		} else if c == '\r' {
			if i+1 < len(contents) && contents[i+1] == '\n' {
				continue // counted when we reach the \n
			}
			info.lines = append(info.lines, i+1)
		}
	}
	return info
}

func (f *FileInfo) Name() string {
	return f.name
}

// SourcePos resolves a byte offset to a position. Offsets equal to
// the file length are legal and identify end-of-input.
func (f *FileInfo) SourcePos(offset int) SourcePos {
	if offset < 0 || offset > len(f.data) {
		panic(fmt.Sprintf("invalid offset: %d is outside file of size %d", offset, len(f.data)))
	}
	line := sort.Search(len(f.lines), func(n int) bool {
		return f.lines[n] > offset
	})
	return SourcePos{
		Filename: f.name,
		Offset:   offset,
		Line:     line,
		// Lines and columns are 1-indexed.
		Col: offset - f.lines[line-1] + 1,
	}
}

// SourcePos identifies a location in a schema source file.
type SourcePos struct {
	Filename  string
	Line, Col int
	Offset    int
}

func (pos SourcePos) String() string {
	if pos.Line <= 0 || pos.Col <= 0 {
		return pos.Filename
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}
