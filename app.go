/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/Seednode/pong/internal/client"
	"github.com/Seednode/pong/internal/display"
	"github.com/Seednode/pong/internal/logging"
	"github.com/Seednode/pong/internal/status"
	"github.com/Seednode/pong/internal/transport"
)

func run(ctx context.Context, cfg *Config) error {
	var err error

	timeZone := os.Getenv("TZ")
	if timeZone != "" {
		time.Local, err = time.LoadLocation(timeZone)
		if err != nil {
			return errors.Wrap(err, "loading time zone")
		}
	}

	logger := logging.New(os.Stderr, cfg.Verbose)

	logger.Info().Str("server", cfg.Server).Bool("headless", cfg.Headless).Msgf("pong v%s", releaseVersion)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		window *display.Window
		hooks  client.Hooks
	)

	if !cfg.Headless {
		window = display.New(logger, display.Config{
			Address: cfg.Server,
			Scale:   cfg.Scale,
		})
		hooks.Snapshot = window.Render
	}

	c := client.New(logger, transport.New(logger, transport.Config{HandshakeTimeout: cfg.ConnectTimeout}), client.Config{
		PaddleStep:   cfg.PaddleStep,
		SendInterval: cfg.SendInterval,
	}, hooks)

	errs := make(chan error, 1)

	if cfg.StatusPort > 0 {
		srv := status.New(logger, status.Config{
			Bind:    cfg.StatusBind,
			Port:    cfg.StatusPort,
			Profile: cfg.Profile,
			Version: releaseVersion,
			Address: cfg.Server,
		}, c.Manager)

		go func() {
			if err := srv.Serve(ctx); err != nil {
				errs <- err
				cancel()
			}
		}()
	}

	if cfg.Connect || cfg.Headless {
		c.Manager.Connect(cfg.Server)
	}

	if window != nil {
		window.Attach(c)

		err = window.Run(ctx)

		c.Manager.Disconnect()
	} else {
		err = c.Run(ctx, cfg.FrameRate)
	}

	cancel()

	if err != nil {
		return err
	}

	select {
	case err := <-errs:
		return err
	default:
		logger.Info().Msg("exiting")

		return nil
	}
}
