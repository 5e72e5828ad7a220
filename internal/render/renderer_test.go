/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package render

import (
	"image/color"
	"testing"

	"github.com/Seednode/pong/internal/pong"
)

type op struct {
	kind       string
	x, y, w, h float64
	text       string
}

type recordingCanvas struct {
	ops []op
}

func (r *recordingCanvas) Clear() {
	r.ops = append(r.ops, op{kind: "clear"})
}

func (r *recordingCanvas) DashedLine(x0, y0, x1, y1, width, dash float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "line", x: x0, y: y0, w: x1 - x0, h: y1 - y0})
}

func (r *recordingCanvas) FillCircle(cx, cy, radius float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "circle", x: cx, y: cy, w: radius})
}

func (r *recordingCanvas) FillRect(x, y, w, h float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, w: w, h: h})
}

func (r *recordingCanvas) Text(s string, x, y float64, c color.Color) {
	r.ops = append(r.ops, op{kind: "text", x: x, y: y, text: s})
}

func (r *recordingCanvas) kinds(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}

	return out
}

func exampleSnapshot(t *testing.T) *pong.Snapshot {
	t.Helper()

	s, err := pong.DecodeSnapshot([]byte(`{"ball":{"x":400,"y":300},"players":{"a":{"y":250,"score":2,"ip":"1.2.3.4"},"b":{"y":100,"score":5,"ip":"5.6.7.8"}}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	return s
}

func TestDrawPlacesPlayersByOrder(t *testing.T) {
	c := &recordingCanvas{}
	Draw(c, exampleSnapshot(t))

	if c.ops[0].kind != "clear" {
		t.Errorf("first op = %s, want clear", c.ops[0].kind)
	}

	circles := c.kinds("circle")
	if len(circles) != 1 || circles[0].x != 400 || circles[0].y != 300 || circles[0].w != pong.BallRadius {
		t.Errorf("ball = %+v", circles)
	}

	rects := c.kinds("rect")
	if len(rects) != 2 {
		t.Fatalf("drew %d paddles", len(rects))
	}

	// "a" on the left, centered on y=250; "b" on the right, centered on y=100.
	if rects[0].x != 10 || rects[0].y != 225 || rects[0].w != 10 || rects[0].h != 50 {
		t.Errorf("paddle a = %+v", rects[0])
	}
	if rects[1].x != 780 || rects[1].y != 75 {
		t.Errorf("paddle b = %+v", rects[1])
	}

	texts := c.kinds("text")
	want := []op{
		{kind: "text", x: 25, y: 250, text: "1.2.3.4..."},
		{kind: "text", x: 25, y: 30, text: "Score: 2"},
		{kind: "text", x: 795, y: 100, text: "5.6.7.8..."},
		{kind: "text", x: 795, y: 30, text: "Score: 5"},
	}
	if len(texts) != len(want) {
		t.Fatalf("texts = %+v", texts)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d = %+v, want %+v", i, texts[i], want[i])
		}
	}
}

func TestDrawDivider(t *testing.T) {
	c := &recordingCanvas{}
	Draw(c, nil)

	if len(c.ops) != 2 {
		t.Fatalf("ops = %+v", c.ops)
	}

	line := c.ops[1]
	if line.kind != "line" || line.x != 400 || line.y != 0 || line.w != 0 || line.h != 600 {
		t.Errorf("divider = %+v", line)
	}
}

func TestDrawNoPlayers(t *testing.T) {
	c := &recordingCanvas{}
	Draw(c, &pong.Snapshot{Ball: pong.Ball{X: 1, Y: 2}, Players: []pong.PlayerEntry{}})

	if len(c.kinds("circle")) != 1 || len(c.kinds("rect")) != 0 || len(c.kinds("text")) != 0 {
		t.Errorf("ops = %+v", c.ops)
	}
}

func TestDrawExtraPlayersGoRight(t *testing.T) {
	s := &pong.Snapshot{
		Players: []pong.PlayerEntry{
			{ID: "a", Player: pong.Player{Y: 100}},
			{ID: "b", Player: pong.Player{Y: 200}},
			{ID: "c", Player: pong.Player{Y: 300}},
		},
	}

	c := &recordingCanvas{}
	Draw(c, s)

	rects := c.kinds("rect")
	if len(rects) != 3 {
		t.Fatalf("drew %d paddles", len(rects))
	}
	if rects[0].x != 10 || rects[1].x != 780 || rects[2].x != 780 {
		t.Errorf("paddles = %+v", rects)
	}
}

func TestDrawLeavesSnapshotAlone(t *testing.T) {
	s := exampleSnapshot(t)
	before := *s
	players := append([]pong.PlayerEntry(nil), s.Players...)

	Draw(&recordingCanvas{}, s)

	if s.Ball != before.Ball || len(s.Players) != len(players) {
		t.Fatal("snapshot changed")
	}
	for i := range players {
		if s.Players[i] != players[i] {
			t.Errorf("player %d changed", i)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]pong.PlayerEntry{
		"1.2.3.4...":  {ID: "x", Player: pong.Player{IP: "1.2.3.4"}},
		"192.168....": {ID: "x", Player: pong.Player{IP: "192.168.100.200"}},
		"3f2a9c1b...": {ID: "3f2a9c1b"},
		"ünïcödé!...": {Player: pong.Player{IP: "ünïcödé!xyz"}},
	}

	for want, p := range cases {
		if got := Label(p); got != want {
			t.Errorf("Label(%+v) = %q, want %q", p, got, want)
		}
	}
}
