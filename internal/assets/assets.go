// Package assets loads the fixed text sprites the game variants draw with.
// Sprite sheets are embedded in the binary and read once when a game is
// constructed; a malformed sheet is a startup error.
package assets

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"strings"
)

//go:embed sprites/*.txt
var spriteFS embed.FS

// Sprite is a named block of text rows.
type Sprite struct {
	Name string
	Rows []string
}

// Width returns the width of the widest row in runes.
func (s Sprite) Width() int {
	w := 0
	for _, row := range s.Rows {
		if n := len([]rune(row)); n > w {
			w = n
		}
	}
	return w
}

// Height returns the number of rows.
func (s Sprite) Height() int {
	return len(s.Rows)
}

// Rune returns the first non-space rune of the sprite, used by sprites that
// describe a fill character.
func (s Sprite) Rune() rune {
	for _, row := range s.Rows {
		for _, r := range row {
			if r != ' ' {
				return r
			}
		}
	}
	return ' '
}

// Sheet is a set of sprites loaded from one file.
type Sheet struct {
	name    string
	sprites map[string]Sprite
}

// Sprite returns the named frame.
func (s Sheet) Sprite(frame string) (Sprite, error) {
	sp, ok := s.sprites[frame]
	if !ok {
		return Sprite{}, fmt.Errorf("assets: sheet %q has no frame %q", s.name, frame)
	}
	return sp, nil
}

// Len returns the number of frames in the sheet.
func (s Sheet) Len() int {
	return len(s.sprites)
}

// Load reads the embedded sheet sprites/<name>.txt and checks that every
// required frame is present.
func Load(name string, required ...string) (Sheet, error) {
	data, err := spriteFS.ReadFile("sprites/" + name + ".txt")
	if err != nil {
		return Sheet{}, fmt.Errorf("assets: cannot read sheet %q: %w", name, err)
	}
	sheet, err := Parse(name, data)
	if err != nil {
		return Sheet{}, err
	}
	for _, frame := range required {
		if _, err := sheet.Sprite(frame); err != nil {
			return Sheet{}, err
		}
	}
	return sheet, nil
}

// Parse decodes a sprite sheet. Lines starting with '#' outside a frame are
// comments; trailing blank lines of a frame are dropped.
func Parse(name string, data []byte) (Sheet, error) {
	sheet := Sheet{name: name, sprites: make(map[string]Sprite)}

	var cur *Sprite
	flush := func() error {
		if cur == nil {
			return nil
		}
		for len(cur.Rows) > 0 && strings.TrimSpace(cur.Rows[len(cur.Rows)-1]) == "" {
			cur.Rows = cur.Rows[:len(cur.Rows)-1]
		}
		if len(cur.Rows) == 0 {
			return fmt.Errorf("assets: sheet %q: frame %q is empty", name, cur.Name)
		}
		sheet.sprites[cur.Name] = *cur
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if frame, ok := strings.CutPrefix(line, "---"); ok {
			if err := flush(); err != nil {
				return Sheet{}, err
			}
			frame = strings.TrimSpace(frame)
			if frame == "" {
				return Sheet{}, fmt.Errorf("assets: sheet %q line %d: frame without a name", name, lineNo)
			}
			if _, dup := sheet.sprites[frame]; dup {
				return Sheet{}, fmt.Errorf("assets: sheet %q line %d: duplicate frame %q", name, lineNo, frame)
			}
			cur = &Sprite{Name: frame}
			continue
		}

		if cur == nil {
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
				continue
			}
			return Sheet{}, fmt.Errorf("assets: sheet %q line %d: content before the first frame", name, lineNo)
		}
		if len(cur.Rows) == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		cur.Rows = append(cur.Rows, line)
	}
	if err := scanner.Err(); err != nil {
		return Sheet{}, fmt.Errorf("assets: sheet %q: %w", name, err)
	}
	if err := flush(); err != nil {
		return Sheet{}, err
	}
	if len(sheet.sprites) == 0 {
		return Sheet{}, fmt.Errorf("assets: sheet %q has no frames", name)
	}
	return sheet, nil
}
