/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

// Key identifies a physical input the client reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyW
	KeyS
)

var (
	UpKeys   = []Key{KeyArrowUp, KeyW}
	DownKeys = []Key{KeyArrowDown, KeyS}
)

// HeldKeys is the set of keys currently held down. The keyboard side writes
// it; the sampler only reads it.
type HeldKeys struct {
	pressed map[Key]bool
}

func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		pressed: make(map[Key]bool),
	}
}

func (k *HeldKeys) Press(key Key) {
	k.pressed[key] = true
}

func (k *HeldKeys) Release(key Key) {
	delete(k.pressed, key)
}

func (k *HeldKeys) Set(key Key, down bool) {
	if down {
		k.Press(key)
	} else {
		k.Release(key)
	}
}

func (k *HeldKeys) IsDown(key Key) bool {
	return k.pressed[key]
}

// Any reports whether at least one of keys is held.
func (k *HeldKeys) Any(keys ...Key) bool {
	for _, key := range keys {
		if k.pressed[key] {
			return true
		}
	}

	return false
}

func (k *HeldKeys) Reset() {
	clear(k.pressed)
}
