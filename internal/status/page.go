/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package status

import (
	"fmt"
	"html"
	"strings"

	"github.com/Seednode/pong/internal/client"
	"github.com/Seednode/pong/internal/render"
)

const refreshSeconds = 2

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", html.EscapeString(title)))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}

func statusPage(st client.Status, target, inState, version string) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	b.WriteString(fmt.Sprintf(`<meta http-equiv="refresh" content="%d">`, refreshSeconds))
	b.WriteString(`<title>pong</title></head><body>`)

	b.WriteString(fmt.Sprintf("<h1>%s</h1>", html.EscapeString(client.StatusText(st.State, target))))
	b.WriteString(fmt.Sprintf("<p>%s for %s</p>", html.EscapeString(st.State.String()), html.EscapeString(inState)))

	if st.Error != "" {
		b.WriteString(fmt.Sprintf("<p>Last error: %s</p>", html.EscapeString(st.Error)))
	}

	if st.Snapshot != nil {
		b.WriteString("<ul>")
		for _, p := range st.Snapshot.Players {
			b.WriteString(fmt.Sprintf("<li>%s %s</li>",
				html.EscapeString(render.Label(p)),
				html.EscapeString(render.ScoreLabel(p.Score))))
		}
		b.WriteString("</ul>")
	}

	b.WriteString(`<img src="/snapshot.png" alt="table" width="400" height="300">`)

	if target != "" {
		b.WriteString(fmt.Sprintf(`<p>%s</p><img src="/qr" alt="server address" width="160" height="160">`, html.EscapeString(target)))
	}

	b.WriteString(fmt.Sprintf("<p>pong v%s</p></body></html>", html.EscapeString(version)))

	return b.String()
}
