/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package display runs the client inside an ebiten window.
package display

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Seednode/pong/internal/client"
	"github.com/Seednode/pong/internal/pong"
	"github.com/Seednode/pong/internal/render"
)

const (
	title       = "Pong"
	maxAddress  = 64
	hudX        = 10
	hudY        = pong.TableHeight - 30
	hudLineStep = 16
)

var (
	hudColor    = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
	cursorColor = color.RGBA{0xff, 0xff, 0x00, 0xff}
)

var keyMap = map[ebiten.Key]client.Key{
	ebiten.KeyArrowUp:   client.KeyArrowUp,
	ebiten.KeyArrowDown: client.KeyArrowDown,
	ebiten.KeyW:         client.KeyW,
	ebiten.KeyS:         client.KeyS,
}

type Config struct {
	Address string
	Scale   float64
}

// Window implements ebiten.Game. Update is the frame driver: it feeds key
// state to the client and then runs one client frame.
type Window struct {
	ctx    context.Context
	log    zerolog.Logger
	client *client.Client

	address []rune
	scale   float64

	table  *ebiten.Image
	canvas *Canvas
}

func New(log zerolog.Logger, cfg Config) *Window {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}

	w := &Window{
		log:     log.With().Str("layer", "display").Logger(),
		address: []rune(cfg.Address),
		scale:   cfg.Scale,
		table:   ebiten.NewImage(pong.TableWidth, pong.TableHeight),
	}
	w.canvas = NewCanvas(w.table)

	render.Draw(w.canvas, nil)

	return w
}

// Attach sets the client the window drives. It must be called before Run.
func (w *Window) Attach(c *client.Client) {
	w.client = c
}

// Render repaints the table from s. It is used as the client's snapshot
// hook, so it runs inside Update.
func (w *Window) Render(s *pong.Snapshot) {
	render.Draw(w.canvas, s)
}

func (w *Window) Address() string {
	return string(w.address)
}

func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || w.ctx.Err() != nil {
		return ebiten.Termination
	}

	state := w.client.Manager.State()

	if state != client.Connected && state != client.Connecting {
		w.editAddress()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		w.log.Debug().Str("address", w.Address()).Stringer("state", state).Msg("toggle")

		w.client.Toggle(w.Address())
	}

	for ek, k := range keyMap {
		w.client.Keys.Set(k, ebiten.IsKeyPressed(ek))
	}

	w.client.Frame()

	return nil
}

func (w *Window) editAddress() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if len(w.address) < maxAddress && r > ' ' {
			w.address = append(w.address, r)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(w.address) > 0 {
		w.address = w.address[:len(w.address)-1]
	}
}

func (w *Window) Draw(screen *ebiten.Image) {
	screen.DrawImage(w.table, nil)

	hud := &Canvas{dst: screen, face: w.canvas.face}

	state := w.client.Manager.State()

	address := "Server: " + w.Address()
	if state != client.Connected && state != client.Connecting {
		hud.Text(address+"_", hudX, hudY, cursorColor)
	} else {
		hud.Text(address, hudX, hudY, hudColor)
	}

	status := client.StatusText(state, w.client.Manager.Target())
	hud.Text("["+client.ButtonLabel(state)+"] "+status, hudX, hudY+hudLineStep, hudColor)
}

func (w *Window) Layout(_, _ int) (int, int) {
	return pong.TableWidth, pong.TableHeight
}

// Run opens the window and blocks until it is closed, Escape is pressed or
// ctx is done.
func (w *Window) Run(ctx context.Context) error {
	if w.client == nil {
		return errors.New("display: no client attached")
	}

	w.ctx = ctx

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(int(pong.TableWidth*w.scale), int(pong.TableHeight*w.scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	err := ebiten.RunGame(w)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "display")
	}

	return nil
}
