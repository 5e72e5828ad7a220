/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package logging configures the zerolog logger shared by every component.
package logging

import (
	"io"
	"log"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout used in console output.
const TimeFormat = `2006-01-02T15:04:05.000-07:00`

// New returns a console logger writing to w. Debug output is only enabled
// when verbose is set. The standard library logger is redirected to it.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: TimeFormat,
	}).Level(level).With().Timestamp().Logger()

	log.SetFlags(0)
	log.SetOutput(logger.With().Str("layer", "stdlib").Logger())

	return logger
}
