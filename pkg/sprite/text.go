package sprite

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fkcurrie/ledchain-golang/pkg/ledcolor"
)

var (
	// ErrInvalidCharacter is returned for text outside [A-Za-z0-9 ].
	ErrInvalidCharacter = errors.New("invalid character")
	// ErrGlyphHeightMismatch is returned when glyphs of a message differ in height.
	ErrGlyphHeightMismatch = errors.New("glyph heights differ")
)

// ComposeText renders message with f, leaving spacing transparent columns
// between characters. Leading and trailing whitespace is dropped; a space
// is as wide as the first character of the message.
func ComposeText(message string, f *Font, spacing int) (*Sprite, error) {
	if spacing < 0 {
		return nil, fmt.Errorf("%w: spacing %d", ErrInvalidSize, spacing)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return &Sprite{}, nil
	}
	for i, r := range message {
		if !supported(r) {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, r, i)
		}
	}

	runes := []rune(message)
	// The message is trimmed, so the first rune has a glyph.
	text, err := f.Glyph(runes[0])
	if err != nil {
		return nil, err
	}
	height, width := text.height, text.width

	for _, r := range runes[1:] {
		var glyph *Sprite
		if r == ' ' {
			glyph = blank(height, width, ledcolor.Transparent)
		} else {
			glyph, err = f.Glyph(r)
			if err != nil {
				return nil, err
			}
		}
		if glyph.height != height {
			return nil, fmt.Errorf("%w: %q is %d rows, want %d", ErrGlyphHeightMismatch, r, glyph.height, height)
		}
		if spacing > 0 {
			if text, err = text.Append(blank(height, spacing, ledcolor.Transparent)); err != nil {
				return nil, err
			}
		}
		if text, err = text.Append(glyph); err != nil {
			return nil, err
		}
	}
	return text, nil
}
