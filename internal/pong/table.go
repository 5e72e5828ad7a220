/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package pong holds the wire types and table geometry shared between the
// client and the game server it talks to.
package pong

// Table geometry, in server coordinates.
const (
	TableWidth  = 800
	TableHeight = 600

	PaddleWidth  = 10
	PaddleHeight = 50

	// PaddleMaxY is the largest y a paddle may report.
	PaddleMaxY = TableHeight - PaddleHeight

	// PaddleStartY matches the position the server assigns new players.
	PaddleStartY = 250

	LeftPaddleX  = 10
	RightPaddleX = TableWidth - 20

	BallRadius = 5
)

// ClampPaddle limits y to [0, PaddleMaxY].
func ClampPaddle(y float64) float64 {
	return max(0, min(PaddleMaxY, y))
}

// PaddleX returns the left edge of the paddle drawn for the player at the
// given position in the snapshot. The first player is on the left, everyone
// else on the right.
func PaddleX(index int) float64 {
	if index == 0 {
		return LeftPaddleX
	}
	return RightPaddleX
}
