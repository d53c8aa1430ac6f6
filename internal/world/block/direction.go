package block

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a face normal. The first six values are the axis-aligned
// faces; the four diagonals are only used by Cross2 geometry.
type Direction uint8

const (
	XPos Direction = iota
	XNeg
	YPos
	YNeg
	ZPos
	ZNeg
	DiagPP // +x +z
	DiagNN // -x -z
	DiagPN // +x -z
	DiagNP // -x +z

	NumDirections = 10
)

// Direction sets in iteration order.
var (
	Axis     = [6]Direction{XPos, XNeg, YPos, YNeg, ZPos, ZNeg}
	Lateral  = [4]Direction{XPos, XNeg, ZPos, ZNeg}
	Vertical = [2]Direction{YPos, YNeg}
	Diagonal = [4]Direction{DiagPP, DiagNN, DiagPN, DiagNP}
)

var opposite = [NumDirections]Direction{
	XPos:   XNeg,
	XNeg:   XPos,
	YPos:   YNeg,
	YNeg:   YPos,
	ZPos:   ZNeg,
	ZNeg:   ZPos,
	DiagPP: DiagNN,
	DiagNN: DiagPP,
	DiagPN: DiagNP,
	DiagNP: DiagPN,
}

var offsets = [NumDirections][3]int{
	XPos:   {1, 0, 0},
	XNeg:   {-1, 0, 0},
	YPos:   {0, 1, 0},
	YNeg:   {0, -1, 0},
	ZPos:   {0, 0, 1},
	ZNeg:   {0, 0, -1},
	DiagPP: {1, 0, 1},
	DiagNN: {-1, 0, -1},
	DiagPN: {1, 0, -1},
	DiagNP: {-1, 0, 1},
}

var names = [NumDirections]string{"XPOS", "XNEG", "YPOS", "YNEG", "ZPOS", "ZNEG", "DIAG_PP", "DIAG_NN", "DIAG_PN", "DIAG_NP"}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return opposite[d]
}

// Offset returns the integer cell step for d.
func (d Direction) Offset() (dx, dy, dz int) {
	o := offsets[d]
	return o[0], o[1], o[2]
}

// Normal returns the unit vector for d.
func (d Direction) Normal() mgl32.Vec3 {
	o := offsets[d]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}.Normalize()
}

// IsLateral reports whether d is one of the four horizontal axis faces.
func (d Direction) IsLateral() bool {
	return d == XPos || d == XNeg || d == ZPos || d == ZNeg
}

// IsDiagonal reports whether d is a Cross2 diagonal.
func (d Direction) IsDiagonal() bool {
	return d >= DiagPP && d < NumDirections
}

// AxisIndex returns 0, 1 or 2 for the x, y and z faces and -1 for diagonals.
func (d Direction) AxisIndex() int {
	if d.IsDiagonal() {
		return -1
	}
	return int(d) / 2
}

// Positive reports whether an axis face points along the positive axis.
func (d Direction) Positive() bool {
	return !d.IsDiagonal() && d%2 == 0
}

// LateralIndex maps a lateral direction to [0,4). It panics otherwise.
func (d Direction) LateralIndex() int {
	switch d {
	case XPos:
		return 0
	case XNeg:
		return 1
	case ZPos:
		return 2
	case ZNeg:
		return 3
	}
	panic(fmt.Sprintf("block: %v is not a lateral direction", d))
}

func (d Direction) String() string {
	if int(d) < len(names) {
		return names[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}
