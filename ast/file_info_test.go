package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcePosResolution(t *testing.T) {
	t.Parallel()
	info := NewFileInfo("test.proto", []byte("ab\ncd\r\nef\rg"))

	testCases := []struct {
		offset    int
		line, col int
	}{
		{offset: 0, line: 1, col: 1},
		{offset: 1, line: 1, col: 2},
		{offset: 2, line: 1, col: 3}, // the newline itself
		{offset: 3, line: 2, col: 1},
		{offset: 4, line: 2, col: 2},
		{offset: 7, line: 3, col: 1},
		{offset: 10, line: 4, col: 1},
		{offset: 11, line: 4, col: 2}, // end of input
	}
	for _, tc := range testCases {
		pos := info.SourcePos(tc.offset)
		assert.Equal(t, tc.line, pos.Line, "offset %d", tc.offset)
		assert.Equal(t, tc.col, pos.Col, "offset %d", tc.offset)
		assert.Equal(t, tc.offset, pos.Offset)
		assert.Equal(t, "test.proto", pos.Filename)
	}

	assert.Panics(t, func() { info.SourcePos(12) })
	assert.Panics(t, func() { info.SourcePos(-1) })
}

func TestSourcePosString(t *testing.T) {
	t.Parallel()
	pos := SourcePos{Filename: "test.proto", Line: 3, Col: 14}
	assert.Equal(t, "test.proto:3:14", pos.String())
	assert.Equal(t, "test.proto", SourcePos{Filename: "test.proto"}.String())
}

func TestEmptyFile(t *testing.T) {
	t.Parallel()
	info := NewFileInfo("empty.proto", nil)
	pos := info.SourcePos(0)
	assert.Equal(t, 1, pos.Line)
	assert.Equal(t, 1, pos.Col)
}
