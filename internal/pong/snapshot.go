/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package pong

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

type Ball struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Player struct {
	Y     float64 `json:"y"`
	Score int     `json:"score"`
	IP    string  `json:"ip"`
}

// PlayerEntry is one member of the players object, keyed by the opaque id
// the server assigned.
type PlayerEntry struct {
	ID string `json:"id"`
	Player
}

// Snapshot is one complete world state as broadcast by the server. Players
// keep the order in which their keys appeared on the wire. A Snapshot is never
// modified after DecodeSnapshot returns it.
type Snapshot struct {
	Ball    Ball          `json:"ball"`
	Players []PlayerEntry `json:"players"`
}

type wireSnapshot struct {
	Ball    *Ball           `json:"ball"`
	Players json.RawMessage `json:"players"`
}

// PositionUpdate is the only message the client sends.
type PositionUpdate struct {
	Y float64 `json:"y"`
}

func EncodePosition(y float64) ([]byte, error) {
	return json.Marshal(PositionUpdate{Y: y})
}

// DecodeSnapshot parses a server message. Any message without both a ball
// and a players object yields an error wrapping ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(ErrMalformedSnapshot, err.Error())
	}

	if w.Ball == nil {
		return nil, errors.Wrap(ErrMalformedSnapshot, "missing ball")
	}

	if isNull(w.Players) {
		return nil, errors.Wrap(ErrMalformedSnapshot, "missing players")
	}

	players, err := decodePlayers(w.Players)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedSnapshot, err.Error())
	}

	return &Snapshot{
		Ball:    *w.Ball,
		Players: players,
	}, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodePlayers walks the players object token by token, since unmarshalling
// into a map would lose the key order the server sent.
func decodePlayers(raw json.RawMessage) ([]PlayerEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("players is not an object")
	}

	players := []PlayerEntry{}
	seen := make(map[string]int)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		id, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected token %v in players", tok)
		}

		var p Player
		if err := dec.Decode(&p); err != nil {
			return nil, errors.Wrapf(err, "player %q", id)
		}

		// A repeated key keeps its first position and its last value.
		if i, ok := seen[id]; ok {
			players[i].Player = p
			continue
		}

		seen[id] = len(players)
		players = append(players, PlayerEntry{ID: id, Player: p})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return players, nil
}
