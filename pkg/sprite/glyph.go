package sprite

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
)

// Parse reads a sprite in glyph file format: one row per line, each row a
// whitespace separated list of hex digits, '-' being transparent. Blank
// lines are ignored.
func Parse(r io.Reader) (*Sprite, error) {
	var rows [][]ledcolor.Color
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(rows) > 0 && len(tokens) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: %w: %d pixels, want %d", line, ErrInconsistentWidth, len(tokens), len(rows[0]))
		}
		row := make([]ledcolor.Color, len(tokens))
		for i, tok := range tokens {
			c, err := ledcolor.ParseSymbol(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			row[i] = c
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sprite: %w", err)
	}
	return New(rows)
}

// FromGlyphFile loads a sprite from a glyph file.
func FromGlyphFile(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// FromGlyphFS loads a sprite from a glyph file in fsys.
func FromGlyphFS(fsys fs.FS, name string) (*Sprite, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// Format writes s in glyph file format.
func (s *Sprite) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(s.pix[y*s.width+x].String())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// String returns the glyph file representation of s.
func (s *Sprite) String() string {
	var b strings.Builder
	s.Format(&b)
	return b.String()
}
