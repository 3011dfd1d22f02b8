package sprite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"unicode"
)

// ErrGlyphNotFound is returned when a font has no glyph for a character.
var ErrGlyphNotFound = errors.New("glyph not found")

// Font maps characters to glyph sprites. It is read-only once built and may
// be shared.
type Font struct {
	glyphs map[rune]*Sprite
}

// NewFont creates a font from a set of glyphs. The glyphs are copied.
func NewFont(glyphs map[rune]*Sprite) *Font {
	f := &Font{glyphs: make(map[rune]*Sprite, len(glyphs))}
	for r, s := range glyphs {
		f.glyphs[r] = s.Clone()
	}
	return f
}

// glyphDir returns the sub-directory of a font that holds r.
func glyphDir(r rune) string {
	switch {
	case r >= '0' && r <= '9':
		return "number"
	case r >= 'A' && r <= 'Z':
		return "upper"
	case r >= 'a' && r <= 'z':
		return "lower"
	}
	return ""
}

// LoadFont loads a font directory laid out as number/<digit>, upper/<letter>
// and lower/<letter> glyph files.
func LoadFont(dir string) (*Font, error) {
	return LoadFontFS(os.DirFS(dir))
}

// LoadFontFS is like LoadFont for a file system. Characters without a glyph
// file are left out of the font.
func LoadFontFS(fsys fs.FS) (*Font, error) {
	f := &Font{glyphs: make(map[rune]*Sprite)}
	for _, set := range []string{"09", "AZ", "az"} {
		for r := rune(set[0]); r <= rune(set[1]); r++ {
			name := path.Join(glyphDir(r), string(r))
			s, err := FromGlyphFS(fsys, name)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to load glyph %q: %w", r, err)
			}
			f.glyphs[r] = s
		}
	}
	if len(f.glyphs) == 0 {
		return nil, fmt.Errorf("%w: font has no glyphs", ErrGlyphNotFound)
	}
	return f, nil
}

// Glyph returns a copy of the glyph for r.
func (f *Font) Glyph(r rune) (*Sprite, error) {
	s, ok := f.glyphs[r]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrGlyphNotFound, r)
	}
	return s.Clone(), nil
}

// Has reports whether f has a glyph for r.
func (f *Font) Has(r rune) bool {
	_, ok := f.glyphs[r]
	return ok
}

// Height returns the height of the tallest glyph.
func (f *Font) Height() int {
	h := 0
	for _, s := range f.glyphs {
		if s.height > h {
			h = s.height
		}
	}
	return h
}

// Runes returns the characters of the font in order.
func (f *Font) Runes() []rune {
	runes := make([]rune, 0, len(f.glyphs))
	for r := range f.glyphs {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}

// supported reports whether r may appear in composed text.
func supported(r rune) bool {
	return r == ' ' || (r < unicode.MaxASCII && glyphDir(r) != "")
}
