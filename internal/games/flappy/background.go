package flappy

import (
	"math"

	"github.com/semboko/flappy/internal/assets"
	"github.com/semboko/flappy/internal/core"
)

// Background layout in playfield units.
const (
	TerrainY         = 565
	TerrainTileWidth = PlayfieldWidth
)

// Cloud anchors (top-left, screen space) on the static sky.
var cloudAnchors = []core.Point{
	{X: 40, Y: 170},
	{X: 300, Y: 240},
	{X: 150, Y: 420},
}

// Background draws the static sky and the scrolling ground tiles.
type Background struct {
	terrain   assets.Sprite
	cloud     assets.Sprite
	tileWidth float64
}

// NewBackground loads the background frames from the sheet.
func NewBackground(sheet assets.Sheet) (*Background, error) {
	terrain, err := sheet.Sprite("terrain")
	if err != nil {
		return nil, err
	}
	cloud, err := sheet.Sprite("cloud")
	if err != nil {
		return nil, err
	}
	return &Background{terrain: terrain, cloud: cloud, tileWidth: TerrainTileWidth}, nil
}

// TileOffset returns the x position of the first ground tile for the given
// scroll value. It always lies in (-tileWidth, 0].
func (bg *Background) TileOffset(scrollX int) float64 {
	tw := bg.tileWidth
	m := math.Mod(float64(scrollX), tw)
	if m < 0 {
		m += tw
	}
	return m - tw
}

// Render draws the sky, then enough ground tiles shifted by scrollX to
// cover the playfield width.
func (bg *Background) Render(dst *core.Screen, vp core.Viewport, scrollX int) {
	for _, a := range cloudAnchors {
		col, row := vp.Cell(a)
		dst.DrawSprite(col, row, bg.cloud.Rows, core.ColorGray)
	}

	offset := bg.TileOffset(scrollX)
	tiles := int(math.Ceil(vp.Width/bg.tileWidth)) + 1
	top := vp.Row(TerrainY)

	for i := 0; i < tiles; i++ {
		x0 := float64(i)*bg.tileWidth + offset
		start, end := vp.Col(x0), vp.Col(x0+bg.tileWidth)
		for row := top; row < vp.Rows; row++ {
			pattern := []rune(bg.terrain.Rows[min(row-top, bg.terrain.Height()-1)])
			if len(pattern) == 0 {
				continue
			}
			color := core.ColorBrown
			if row == top {
				color = core.ColorBrightGreen
			}
			for col := max(start, 0); col < min(end, vp.Cols); col++ {
				dst.SetColor(col, row, pattern[(col-start)%len(pattern)], color)
			}
		}
	}
}
