package common

// Logical canvas and grid defaults. The game spec can override them.
const (
	BaseWidth    = 1200
	BaseHeight   = 600
	GroundHeight = 100
	CellSize     = 50
	TPS          = 60
)

// FloorY is the y-coordinate of the top of the ground strip.
const FloorY = BaseHeight - GroundHeight
