// Package render draws a board to a PNG for debugging and the self-play
// harness. Pointy-top hexes in axial coordinates; pieces are drawn as
// colored shapes keyed by seat.
package render

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/i-jared/catan/engine"
)

const (
	hexSize = 60.0 // center to corner
	margin  = 80.0
)

var terrainColors = map[engine.Terrain][3]float64{
	engine.TerrainDesert:    {0.93, 0.87, 0.67},
	engine.TerrainForest:    {0.13, 0.47, 0.22},
	engine.TerrainHills:     {0.72, 0.34, 0.18},
	engine.TerrainFields:    {0.93, 0.79, 0.25},
	engine.TerrainPasture:   {0.55, 0.78, 0.33},
	engine.TerrainMountains: {0.52, 0.52, 0.56},
}

var seatColors = [][3]float64{
	{0.85, 0.16, 0.16}, // red
	{0.16, 0.32, 0.85}, // blue
	{0.95, 0.95, 0.95}, // white
	{0.90, 0.55, 0.10}, // orange
}

// hexCenter maps axial coordinates to pixel space.
func hexCenter(h engine.HexCoord) (float64, float64) {
	x := hexSize * math.Sqrt(3) * (float64(h.Q) + float64(h.R)/2)
	y := hexSize * 1.5 * float64(h.R)
	return x, y
}

// vertexPoint maps a vertex coordinate to pixel space. Corner d sits where
// the hex meets its neighbors in directions d and d-1, so the centroid of
// the three centers lands on the same pixel for every representation.
func vertexPoint(v engine.VertexCoord) (float64, float64) {
	ax, ay := hexCenter(v.Hex)
	bx, by := hexCenter(v.Hex.Neighbor(v.Dir))
	cx, cy := hexCenter(v.Hex.Neighbor(v.Dir + 5))
	return (ax + bx + cx) / 3, (ay + by + cy) / 3
}

// BoardPNG renders the board and writes it to path.
func BoardPNG(g *engine.Game, path string) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for coord := range g.Board.Hexes {
		x, y := hexCenter(coord)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	width := int(maxX - minX + 2*(hexSize+margin))
	height := int(maxY - minY + 2*(hexSize+margin))
	offX := -minX + hexSize + margin
	offY := -minY + hexSize + margin

	ctx := gg.NewContext(width, height)
	ctx.SetRGB(0.16, 0.42, 0.62) // ocean
	ctx.Clear()

	for _, hex := range g.Board.Hexes {
		drawHex(ctx, g, hex, offX, offY)
	}
	for _, edge := range g.Board.Edges {
		if edge.HasRoad {
			drawRoad(ctx, edge, offX, offY)
		}
	}
	for _, vert := range g.Board.Vertices {
		if vert.Building != engine.BuildingNone {
			drawBuilding(ctx, vert, offX, offY)
		}
	}

	return ctx.SavePNG(path)
}

func drawHex(ctx *gg.Context, g *engine.Game, hex *engine.Hex, offX, offY float64) {
	cx, cy := hexCenter(hex.Coord)
	cx += offX
	cy += offY

	ctx.NewSubPath()
	for d := 0; d < 6; d++ {
		x, y := vertexPoint(engine.VertexCoord{Hex: hex.Coord, Dir: d})
		if d == 0 {
			ctx.MoveTo(x+offX, y+offY)
		} else {
			ctx.LineTo(x+offX, y+offY)
		}
	}
	ctx.ClosePath()

	c := terrainColors[hex.Terrain]
	ctx.SetRGB(c[0], c[1], c[2])
	ctx.FillPreserve()
	ctx.SetRGB(0.2, 0.2, 0.2)
	ctx.SetLineWidth(2)
	ctx.Stroke()

	if hex.Number > 0 {
		ctx.SetRGB(1, 1, 1)
		ctx.DrawCircle(cx, cy, hexSize*0.28)
		ctx.Fill()
		if hex.Number == 6 || hex.Number == 8 {
			ctx.SetRGB(0.8, 0.1, 0.1)
		} else {
			ctx.SetRGB(0.1, 0.1, 0.1)
		}
		ctx.DrawStringAnchored(fmt.Sprintf("%d", hex.Number), cx, cy, 0.5, 0.5)
	}

	if g.Board.Robber == hex.Coord {
		ctx.SetRGBA(0.1, 0.1, 0.1, 0.8)
		ctx.DrawCircle(cx, cy-hexSize*0.45, hexSize*0.16)
		ctx.Fill()
	}
}

func drawRoad(ctx *gg.Context, edge *engine.Edge, offX, offY float64) {
	v1, v2 := edge.Coord.Endpoints()
	x1, y1 := vertexPoint(v1)
	x2, y2 := vertexPoint(v2)

	c := seatColors[edge.Owner%len(seatColors)]
	ctx.SetRGB(c[0], c[1], c[2])
	ctx.SetLineWidth(6)
	ctx.DrawLine(x1+offX, y1+offY, x2+offX, y2+offY)
	ctx.Stroke()
}

func drawBuilding(ctx *gg.Context, vert *engine.Vertex, offX, offY float64) {
	x, y := vertexPoint(vert.Coord)
	x += offX
	y += offY

	c := seatColors[vert.Owner%len(seatColors)]
	ctx.SetRGB(c[0], c[1], c[2])
	r := hexSize * 0.14
	if vert.Building == engine.BuildingCity {
		ctx.DrawRectangle(x-r, y-r, 2*r, 2*r)
	} else {
		ctx.DrawCircle(x, y, r)
	}
	ctx.Fill()
	ctx.SetRGB(0.1, 0.1, 0.1)
	ctx.SetLineWidth(1.5)
	if vert.Building == engine.BuildingCity {
		ctx.DrawRectangle(x-r, y-r, 2*r, 2*r)
	} else {
		ctx.DrawCircle(x, y, r)
	}
	ctx.Stroke()
}
