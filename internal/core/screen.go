package core

// Screen is a low-resolution pixel buffer sized for a terminal: every
// character cell covers two vertically stacked pixels, so a screen of
// cols x rows cells holds cols x rows*2 pixels. A separate glyph layer lets
// frontends print text on top of the pixels, one rune per cell.
type Screen struct {
	cols   int
	rows   int
	pixels []Color
	glyphs []Glyph
}

// Glyph is a text rune drawn over a cell with its own foreground color.
// The zero Glyph means "no text in this cell".
type Glyph struct {
	Ch rune
	FG Color
}

// NewScreen creates a new screen buffer with the given size in cells.
func NewScreen(cols, rows int) *Screen {
	s := &Screen{}
	s.Resize(cols, rows)
	return s
}

// Cols returns the screen width in cells (and pixels).
func (s *Screen) Cols() int {
	return s.cols
}

// Rows returns the screen height in cells.
func (s *Screen) Rows() int {
	return s.rows
}

// Width returns the pixel width.
func (s *Screen) Width() int {
	return s.cols
}

// Height returns the pixel height, two per row.
func (s *Screen) Height() int {
	return s.rows * 2
}

// Resize changes the screen dimensions. Content is discarded.
func (s *Screen) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == s.cols && rows == s.rows && s.pixels != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.pixels = make([]Color, cols*rows*2)
	s.glyphs = make([]Glyph, cols*rows)
}

// Clear fills every pixel with c and drops all glyphs.
func (s *Screen) Clear(c Color) {
	for i := range s.pixels {
		s.pixels[i] = c
	}
	clear(s.glyphs)
}

// Set paints one pixel. Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, c Color) {
	if x < 0 || x >= s.Width() || y < 0 || y >= s.Height() {
		return
	}
	s.pixels[y*s.cols+x] = c
}

// Get returns the pixel at (x, y), black when out of bounds.
func (s *Screen) Get(x, y int) Color {
	if x < 0 || x >= s.Width() || y < 0 || y >= s.Height() {
		return ColorBlack
	}
	return s.pixels[y*s.cols+x]
}

// BlendPixel mixes c into the pixel at (x, y) with the given alpha.
func (s *Screen) BlendPixel(x, y int, c Color, alpha uint8) {
	if alpha == 0 {
		return
	}
	if alpha == 255 {
		s.Set(x, y, c)
		return
	}
	s.Set(x, y, s.Get(x, y).Blend(c, alpha))
}

// FillRect paints a rectangle of pixels.
func (s *Screen) FillRect(r Rect, c Color) {
	r = r.Intersect(NewRect(0, 0, s.Width(), s.Height()))
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.pixels[y*s.cols+x] = c
		}
	}
}

// SetGlyph places a rune in the glyph layer at cell (col, row).
func (s *Screen) SetGlyph(col, row int, ch rune, fg Color) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return
	}
	s.glyphs[row*s.cols+col] = Glyph{Ch: ch, FG: fg}
}

// Cell returns what a terminal shows at (col, row): the top and bottom
// pixel colors and the overlaid glyph, if any.
func (s *Screen) Cell(col, row int) (top, bottom Color, g Glyph) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return ColorBlack, ColorBlack, Glyph{}
	}
	return s.pixels[(row*2)*s.cols+col], s.pixels[(row*2+1)*s.cols+col], s.glyphs[row*s.cols+col]
}
