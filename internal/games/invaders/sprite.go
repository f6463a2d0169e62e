package invaders

// Ship sprite dimensions in cells.
const (
	ShipWidth  = 15
	ShipHeight = 8
)

// shipSchema is the ship silhouette; 1 marks a drawn cell.
var shipSchema = [][]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// Sprite is a rectangular on/off mask.
type Sprite struct {
	W, H int
	mask [][]bool
}

// SpriteFromSchema builds a sprite from rows of 0/1 values.
// All rows must have the same length.
func SpriteFromSchema(schema [][]uint8) Sprite {
	s := Sprite{H: len(schema)}
	if s.H > 0 {
		s.W = len(schema[0])
	}
	s.mask = make([][]bool, s.H)
	for y, row := range schema {
		if len(row) != s.W {
			panic("invaders: ragged sprite schema")
		}
		s.mask[y] = make([]bool, s.W)
		for x, v := range row {
			s.mask[y][x] = v == 1
		}
	}
	return s
}

// On reports whether the mask cell at (x, y) is drawn.
func (s Sprite) On(x, y int) bool {
	return s.mask[y][x]
}
