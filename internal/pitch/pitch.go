// Package pitch provides stateless predicates over pitch coordinates.
//
// The pitch is 120×80 with x oriented along the acting team's attacking
// direction, so x=120 is always the opponent's goal line. Inputs are assumed
// in-range (the normalization boundary defaults malformed locations); the
// predicates accept out-of-range values as-is without clamping.
package pitch

import "math"

const (
	// Length and Width are the provider's pitch dimensions.
	Length = 120.0
	Width  = 80.0

	// ProgressiveThreshold is the minimum forward gain, in pitch units, for
	// a pass or carry to count as progressive.
	ProgressiveThreshold = 10.0

	// FinalThirdBoundary is the x coordinate where the attacking third begins.
	FinalThirdBoundary = 80.0

	penaltyAreaX    = 102.0
	penaltyAreaYMin = 18.0
	penaltyAreaYMax = 62.0
)

// IsProgressive reports whether moving the ball from startX to endX gained at
// least ProgressiveThreshold toward the opponent goal. Lateral movement is
// irrelevant.
func IsProgressive(startX, endX float64) bool {
	return endX-startX >= ProgressiveThreshold
}

// InPenaltyArea reports whether (x, y) lies inside the opponent's penalty area.
func InPenaltyArea(x, y float64) bool {
	return x >= penaltyAreaX && y >= penaltyAreaYMin && y <= penaltyAreaYMax
}

// EntersFinalThird reports whether an action starting at startX crossed into
// the attacking third: it must begin before the boundary and end on or past it.
func EntersFinalThird(startX, endX float64) bool {
	return startX < FinalThirdBoundary && endX >= FinalThirdBoundary
}

// EntersPenaltyArea reports whether an action ended inside the penalty area
// having started outside it.
func EntersPenaltyArea(startX, startY, endX, endY float64) bool {
	return InPenaltyArea(endX, endY) && !InPenaltyArea(startX, startY)
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
