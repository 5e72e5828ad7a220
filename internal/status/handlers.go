/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package status

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/pong/internal/client"
	"github.com/Seednode/pong/internal/render"
)

const (
	qrSize   = 320
	maxScale = 4
)

type statusResponse struct {
	client.Status
	Text       string `json:"text"`
	InStateFor string `json:"in_state_for"`
	Version    string `json:"version"`
}

func inStateFor(st client.Status) string {
	return durafmt.Parse(time.Since(st.Since).Round(time.Second)).LimitFirstN(2).String()
}

// target is the websocket URL shown and encoded for sharing.
func (s *Server) target(st client.Status) string {
	if st.Target != "" {
		return st.Target
	}
	if s.cfg.Address == "" {
		return ""
	}

	return client.TargetURL(s.cfg.Address)
}

func (s *Server) logServed(r *http.Request, what string, size int, start time.Time) {
	s.log.Debug().
		Str("size", humanize.Bytes(uint64(size))).
		Str("client", realIP(r)).
		Dur("elapsed", time.Since(start).Round(time.Microsecond)).
		Msgf("served %s", what)
}

func (s *Server) write(w http.ResponseWriter, data []byte) int {
	written, err := w.Write(data)
	if err != nil {
		s.log.Debug().Err(err).Msg("writing response")
	}

	return written
}

func (s *Server) serveStatusPage() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()

		st := s.source.Status()
		body := statusPage(st, s.target(st), inStateFor(st), s.cfg.Version)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(w)

		written := s.write(w, []byte(body))
		s.logServed(r, "status page", written, start)
	}
}

func (s *Server) serveStatus() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()

		st := s.source.Status()
		st.Target = s.target(st)

		data, err := json.Marshal(statusResponse{
			Status:     st,
			Text:       client.StatusText(st.State, st.Target),
			InStateFor: inStateFor(st),
			Version:    s.cfg.Version,
		})
		if err != nil {
			http.Error(w, "status encoding failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(w)

		written := s.write(w, data)
		s.logServed(r, "status", written, start)
	}
}

func (s *Server) serveSnapshot() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()

		scale := 1.0
		if v := r.URL.Query().Get("scale"); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil || parsed <= 0 || parsed > maxScale {
				http.Error(w, "invalid scale", http.StatusBadRequest)
				return
			}
			scale = parsed
		}

		var buf bytes.Buffer
		if err := render.Snapshot(s.source.Status().Snapshot).EncodePNG(&buf, scale); err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		securityHeaders(w)

		written := s.write(w, buf.Bytes())
		s.logServed(r, "snapshot", written, start)
	}
}

// serveQR encodes the game server address so another player can join the
// same server from their phone or camera.
func (s *Server) serveQR() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		target := s.target(s.source.Status())
		if target == "" {
			http.Error(w, "no server address", http.StatusNotFound)
			return
		}

		png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(w)

		_ = s.write(w, png)
	}
}

func (s *Server) serveHealthCheck() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)

		_ = s.write(w, []byte("Ok\n"))
	}
}

func (s *Server) serveVersion() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		start := time.Now()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(w)
		w.WriteHeader(http.StatusOK)

		written := s.write(w, []byte("pong v"+s.cfg.Version+"\n"))
		s.logServed(r, "version", written, start)
	}
}

func (s *Server) serveRobots() httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		data := "User-agent: *\nDisallow: /\n"

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(w)

		_ = s.write(w, []byte(data))
	}
}
