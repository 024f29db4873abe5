package source

type (
	// FileID identifies a file inside a FileSet.
	FileID uint32
	// FileFlags records how the content was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (stdin, repl, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded source together with its line index and content hash.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Text returns the bytes covered by sp as a string.
// Out of range spans are clamped to the content.
func (f *File) Text(sp Span) string {
	n := uint32(len(f.Content)) //nolint:gosec // bounded by FileSet.Add
	start, end := min(sp.Start, n), min(sp.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// Line returns line number lineNum (1-based) without its trailing newline.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	n := uint32(len(f.Content)) //nolint:gosec // bounded by FileSet.Add
	lines := uint32(len(f.LineIdx)) //nolint:gosec // never more lines than bytes

	var start uint32
	if lineNum > 1 {
		if lineNum-2 >= lines {
			return ""
		}
		start = f.LineIdx[lineNum-2] + 1
	}
	end := n
	if lineNum-1 < lines {
		end = f.LineIdx[lineNum-1]
	}
	if start >= n {
		return ""
	}
	return string(f.Content[start:end])
}
