/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package client

// StatusText is the status line shown to the player.
func StatusText(s State, target string) string {
	switch s {
	case Connecting:
		return "Connecting to " + target + "..."
	case Connected:
		return "Connected! W/S or arrows to move"
	case Failed:
		return "Connection failed! Check IP/port/firewall"
	default:
		return "Disconnected"
	}
}

// ButtonLabel is the caption of the connect toggle.
func ButtonLabel(s State) string {
	switch s {
	case Connecting:
		return "Connecting..."
	case Connected:
		return "Disconnect"
	case Failed:
		return "Retry"
	default:
		return "Connect"
	}
}
