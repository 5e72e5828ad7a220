/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package status

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Seednode/pong/internal/client"
	"github.com/Seednode/pong/internal/pong"
)

type fixedSource struct {
	status client.Status
}

func (f fixedSource) Status() client.Status {
	return f.status
}

func newTestServer(t *testing.T, st client.Status, cfg Config) *httptest.Server {
	t.Helper()

	if cfg.Version == "" {
		cfg.Version = "0.0.0-test"
	}

	srv := httptest.NewServer(New(zerolog.Nop(), cfg, fixedSource{status: st}).Handler())
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}

	return resp, body
}

func connectedStatus() client.Status {
	return client.Status{
		State:  client.Connected,
		Target: "ws://localhost:8765",
		ConnID: "abc",
		Since:  time.Now().Add(-90 * time.Second),
		Snapshot: &pong.Snapshot{
			Ball: pong.Ball{X: 400, Y: 300},
			Players: []pong.PlayerEntry{
				{ID: "a", Player: pong.Player{Y: 100, Score: 3, IP: "192.168.1.20"}},
				{ID: "b", Player: pong.Player{Y: 200, Score: 1, IP: "<script>"}},
			},
		},
	}
}

func TestStatusJSON(t *testing.T) {
	srv := newTestServer(t, connectedStatus(), Config{})

	resp, body := get(t, srv.URL+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("decoding %s: %v", body, err)
	}

	if got["state"] != "connected" {
		t.Errorf("state = %v, want connected", got["state"])
	}
	if got["text"] != "Connected! W/S or arrows to move" {
		t.Errorf("text = %v", got["text"])
	}
	if got["target"] != "ws://localhost:8765" {
		t.Errorf("target = %v", got["target"])
	}
	if got["version"] != "0.0.0-test" {
		t.Errorf("version = %v", got["version"])
	}
	if s, _ := got["in_state_for"].(string); !strings.Contains(s, "minute") {
		t.Errorf("in_state_for = %q, want a duration in minutes", s)
	}
	if _, ok := got["snapshot"].(map[string]any); !ok {
		t.Errorf("snapshot missing from %s", body)
	}
}

func TestStatusFallsBackToConfiguredAddress(t *testing.T) {
	srv := newTestServer(t, client.Status{State: client.Disconnected, Since: time.Now()}, Config{Address: "10.0.0.5:9000"})

	_, body := get(t, srv.URL+"/status")

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got["target"] != "ws://10.0.0.5:9000" {
		t.Errorf("target = %v, want ws://10.0.0.5:9000", got["target"])
	}
	if _, ok := got["snapshot"]; ok {
		t.Errorf("snapshot present before any was received: %s", body)
	}
}

func TestStatusPageEscapes(t *testing.T) {
	srv := newTestServer(t, connectedStatus(), Config{})

	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}

	page := string(body)
	if strings.Contains(page, "<script>") {
		t.Error("player address was not escaped")
	}
	for _, want := range []string{"192.168....", "Score: 3", "Score: 1", `http-equiv="refresh"`, "/snapshot.png"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers not set")
	}
}

func TestSnapshotPNG(t *testing.T) {
	srv := newTestServer(t, connectedStatus(), Config{})

	for _, tc := range []struct {
		query         string
		width, height int
	}{
		{"", 800, 600},
		{"?scale=0.5", 400, 300},
		{"?scale=2", 1600, 1200},
	} {
		resp, body := get(t, srv.URL+"/snapshot.png"+tc.query)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%q: status code = %d", tc.query, resp.StatusCode)
		}

		cfg, err := png.DecodeConfig(bytes.NewReader(body))
		if err != nil {
			t.Fatalf("%q: decoding png: %v", tc.query, err)
		}
		if cfg.Width != tc.width || cfg.Height != tc.height {
			t.Errorf("%q: size = %dx%d, want %dx%d", tc.query, cfg.Width, cfg.Height, tc.width, tc.height)
		}
	}
}

func TestSnapshotRejectsBadScale(t *testing.T) {
	srv := newTestServer(t, connectedStatus(), Config{})

	for _, q := range []string{"abc", "0", "-1", "5"} {
		resp, _ := get(t, srv.URL+"/snapshot.png?scale="+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("scale=%s: status code = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestSnapshotWithoutState(t *testing.T) {
	srv := newTestServer(t, client.Status{Since: time.Now()}, Config{})

	resp, body := get(t, srv.URL+"/snapshot.png")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}
	if _, err := png.Decode(bytes.NewReader(body)); err != nil {
		t.Fatalf("decoding png: %v", err)
	}
}

func TestQR(t *testing.T) {
	srv := newTestServer(t, connectedStatus(), Config{})

	resp, body := get(t, srv.URL+"/qr")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status code = %d", resp.StatusCode)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if cfg.Width != qrSize {
		t.Errorf("width = %d, want %d", cfg.Width, qrSize)
	}
}

func TestQRWithoutAddress(t *testing.T) {
	srv := newTestServer(t, client.Status{Since: time.Now()}, Config{})

	resp, _ := get(t, srv.URL+"/qr")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status code = %d, want 404", resp.StatusCode)
	}
}

func TestPlainEndpoints(t *testing.T) {
	srv := newTestServer(t, connectedStatus(), Config{Version: "1.2.3"})

	for path, want := range map[string]string{
		"/healthz":    "Ok\n",
		"/version":    "pong v1.2.3\n",
		"/robots.txt": "User-agent: *\nDisallow: /\n",
	} {
		resp, body := get(t, srv.URL+path)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: status code = %d", path, resp.StatusCode)
		}
		if string(body) != want {
			t.Errorf("%s: body = %q, want %q", path, body, want)
		}
	}
}

func TestProfileRoutes(t *testing.T) {
	off := newTestServer(t, connectedStatus(), Config{})
	if resp, _ := get(t, off.URL+"/pprof/heap"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("profiling disabled: status code = %d, want 404", resp.StatusCode)
	}

	on := newTestServer(t, connectedStatus(), Config{Profile: true})
	if resp, _ := get(t, on.URL+"/pprof/heap"); resp.StatusCode != http.StatusOK {
		t.Errorf("profiling enabled: status code = %d, want 200", resp.StatusCode)
	}
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.1.1.1:5555"

	if got := realIP(r); got != "10.1.1.1:5555" {
		t.Errorf("realIP = %q", got)
	}

	r.Header.Set("X-Real-IP", "203.0.113.9")
	if got := realIP(r); got != "203.0.113.9:5555" {
		t.Errorf("realIP with X-Real-IP = %q", got)
	}

	r.Header.Set("CF-Connecting-IP", "not-an-ip")
	if got := realIP(r); got != "10.1.1.1:5555" {
		t.Errorf("realIP with invalid CF header = %q", got)
	}
}

func TestServeShutsDown(t *testing.T) {
	s := New(zerolog.Nop(), Config{Bind: "127.0.0.1", Port: 0}, fixedSource{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
