package metadata

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// xzMagic is the header of every xz container.
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// LoadDocument decompresses and parses the metadata document at path.
// Invalid UTF-8 in the document is replaced with U+FFFD before parsing.
func LoadDocument(path string) (any, error) {
	f, err := os.Open(path) //nolint:gosec // Paths come from the saved index
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeDocument(f)
}

// DecodeDocument parses a compressed metadata document from r.
func DecodeDocument(r io.Reader) (any, error) {
	dr, err := decompress(r)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(transform.NewReader(dr, unicode.UTF8.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress metadata: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata JSON: %w", err)
	}
	return doc, nil
}

// decompress returns a reader over the decompressed stream, choosing the xz
// or the legacy lzma decoder based on the stream header.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read metadata header: %w", err)
	}

	if bytes.Equal(head, xzMagic) {
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to open xz stream: %w", err)
		}
		return xr, nil
	}

	lr, err := lzma.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to open lzma stream: %w", err)
	}
	return lr, nil
}
