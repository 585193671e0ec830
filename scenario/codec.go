package scenario

import (
	"path/filepath"
	"strings"
)

// ---------------------------------------------------------------------------
// Codec registry
// ---------------------------------------------------------------------------

// Codec decodes and encodes one on-disk table format. Decode returns
// the full table; DecodeHeader reads only the header row, which lets the
// scanner reject files without a source column before loading rows.
type Codec interface {
	Decode(path string) (*Table, error)
	DecodeHeader(path string) ([]string, error)
	Encode(path string, t *Table) error
}

// codecs maps a lowercase file extension (with dot) to its codec.
var codecs = map[string]Codec{
	".csv":  CSVCodec{},
	".xlsx": XLSXCodec{},
}

// ForPath returns the codec handling the file's extension.
func ForPath(path string) (Codec, bool) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	return c, ok
}

// IsTableFile reports whether the path has a recognized table extension.
func IsTableFile(path string) bool {
	_, ok := ForPath(path)
	return ok
}
