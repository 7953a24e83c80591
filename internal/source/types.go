package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	// IDs are 1-based; 0 means "no file".
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a leading UTF-8 BOM was stripped at load time.
	FileHadBOM
)

// File captures metadata and content for a single source file.
// Content holds the bytes the scanner sees: verbatim except for a stripped
// leading BOM. Line endings are never rewritten, a CR inside a string
// literal is content.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
