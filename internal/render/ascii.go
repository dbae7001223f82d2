// Package render draws dungeons as ASCII maps for debugging and the CLI.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lawnchairsociety/undercroft/internal/dungeon"
)

// Map cell glyphs.
const (
	glyphEmpty    = ' '
	glyphWall     = '#'
	glyphFloor    = '.'
	glyphCorridor = ':'
	glyphDoor     = '+'
	glyphEntrance = 'E'
	glyphBoss     = 'B'
	glyphEnemy    = 'e'
	glyphChest    = 'c'
	glyphBigChest = 'C'
	glyphTrap     = '^'
)

// Options controls what Map draws.
type Options struct {
	// ShowHidden draws traps that have not been triggered yet.
	ShowHidden bool

	// Legend appends the glyph legend.
	Legend bool
}

type canvas struct {
	minX, minY int
	w, h       int
	cells      [][]rune
}

func newCanvas(minX, minY, maxX, maxY int) *canvas {
	c := &canvas{minX: minX, minY: minY, w: maxX - minX + 1, h: maxY - minY + 1}
	c.cells = make([][]rune, c.h)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(string(glyphEmpty), c.w))
	}
	return c
}

func (c *canvas) get(x, y int) rune {
	x, y = x-c.minX, y-c.minY
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return glyphEmpty
	}
	return c.cells[y][x]
}

func (c *canvas) set(x, y int, r rune) {
	x, y = x-c.minX, y-c.minY
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
}

func (c *canvas) String() string {
	var b strings.Builder
	for _, row := range c.cells {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}
	return b.String()
}

// corridorCells lists every grid cell a corridor covers. Width extends each
// leg to the right of vertical legs and below horizontal ones.
func corridorCells(c *dungeon.Corridor) []dungeon.Point {
	width := max(c.Width, 1)
	var cells []dungeon.Point
	for _, s := range c.Segments {
		dx, dy := sign(s.To.X-s.From.X), sign(s.To.Y-s.From.Y)
		p := s.From
		for {
			for k := range width {
				if s.Horizontal() {
					cells = append(cells, dungeon.Point{X: p.X, Y: p.Y + k})
				} else {
					cells = append(cells, dungeon.Point{X: p.X + k, Y: p.Y})
				}
			}
			if p == s.To {
				break
			}
			p.X += dx
			p.Y += dy
		}
	}
	return cells
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Map draws d on a character grid, one character per cell, north up.
func Map(d *dungeon.Dungeon, opts Options) string {
	if len(d.Rooms) == 0 {
		return "(empty dungeon)\n"
	}

	b := d.Bounds()
	minX, minY, maxX, maxY := b.X, b.Y, b.X+b.W-1, b.Y+b.H-1
	var corridors []dungeon.Point
	for _, c := range d.Corridors {
		for _, p := range corridorCells(c) {
			corridors = append(corridors, p)
			minX, minY = min(minX, p.X), min(minY, p.Y)
			maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
		}
	}

	cv := newCanvas(minX, minY, maxX, maxY)

	for _, r := range d.Rooms {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				edge := x == r.X || y == r.Y || x == r.X+r.Width-1 || y == r.Y+r.Height-1
				if edge {
					cv.set(x, y, glyphWall)
				} else {
					cv.set(x, y, glyphFloor)
				}
			}
		}
	}

	for _, p := range corridors {
		switch cv.get(p.X, p.Y) {
		case glyphEmpty:
			cv.set(p.X, p.Y, glyphCorridor)
		case glyphWall:
			cv.set(p.X, p.Y, glyphDoor)
		}
	}

	for _, r := range d.Rooms {
		for _, t := range r.Traps {
			if t.Visible || opts.ShowHidden {
				cv.set(t.X, t.Y, glyphTrap)
			}
		}
	}
	for _, ch := range d.Chests {
		glyph := glyphChest
		if ch.Tier != dungeon.TierNormal {
			glyph = glyphBigChest
		}
		cv.set(ch.X, ch.Y, glyph)
	}
	for _, e := range d.Enemies {
		if !e.Defeated {
			cv.set(e.X, e.Y, glyphEnemy)
		}
	}
	if r := d.Entrance(); r != nil {
		c := r.Center()
		cv.set(c.X, c.Y, glyphEntrance)
	}
	if d.Boss != nil && !d.Boss.Defeated {
		c := d.Rooms[d.Boss.Room].Center()
		cv.set(c.X, c.Y, glyphBoss)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s %s (seed %d, %d rooms)\n", d.Type, d.ID, d.Seed, len(d.Rooms))
	out.WriteString(strings.Repeat("=", 60) + "\n")
	out.WriteString(cv.String())
	out.WriteString("\n")
	out.WriteString(Details(d))
	if opts.Legend {
		out.WriteString(Legend())
	}
	return out.String()
}

// Details lists every room with its position, size, connections and
// contents.
func Details(d *dungeon.Dungeon) string {
	var out strings.Builder
	out.WriteString("Room Details:\n")

	boss := d.BossRoom()
	for i, r := range d.Rooms {
		details := fmt.Sprintf("  %2d %-12s (%d,%d) %dx%d", i, r.Archetype, r.X, r.Y, r.Width, r.Height)

		conns := append([]int(nil), r.Connections...)
		sort.Ints(conns)
		if len(conns) > 0 {
			strs := make([]string, len(conns))
			for j, c := range conns {
				strs[j] = fmt.Sprint(c)
			}
			details += " -> " + strings.Join(strs, ",")
		}

		var markers []string
		if r.IsEntrance {
			markers = append(markers, "entrance")
		}
		if i == boss {
			markers = append(markers, "boss")
		}
		if n := len(d.EnemiesIn(i)); n > 0 {
			markers = append(markers, fmt.Sprintf("%d enemies", n))
		}
		for _, c := range d.ChestsIn(i) {
			markers = append(markers, string(c.Tier)+" chest")
		}
		if len(r.Traps) > 0 {
			markers = append(markers, fmt.Sprintf("%d %s", len(r.Traps), r.Traps[0].Archetype))
		}
		for _, f := range r.Features {
			markers = append(markers, string(f))
		}
		if r.Cleared {
			markers = append(markers, "cleared")
		}

		if len(markers) > 0 {
			details += " [" + strings.Join(markers, ", ") + "]"
		}
		out.WriteString(details + "\n")
	}
	return out.String()
}

// Legend explains the map glyphs.
func Legend() string {
	return `
Legend:
  #   Wall
  .   Floor
  :   Corridor
  +   Doorway
  E   Entrance
  B   Boss
  e   Enemy
  c   Chest
  C   Treasure or boss chest
  ^   Trap
`
}
