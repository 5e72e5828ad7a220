/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Connect        bool
	ConnectTimeout time.Duration
	FrameRate      int
	Headless       bool
	PaddleStep     float64
	Profile        bool
	Scale          float64
	SendInterval   time.Duration
	Server         string
	StatusBind     string
	StatusPort     int
	Verbose        bool
	Version        bool
}

// dialAddress strips an optional websocket scheme so the remainder can be
// checked as host:port.
func dialAddress(value any) error {
	s, _ := value.(string)

	s = strings.TrimPrefix(strings.TrimPrefix(s, "ws://"), "wss://")

	return validation.Validate(strings.TrimSuffix(s, "/"), is.DialString)
}

func (c *Config) validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server, validation.Required, validation.By(dialAddress)),
		validation.Field(&c.ConnectTimeout, validation.Min(time.Millisecond)),
		validation.Field(&c.SendInterval, validation.Min(time.Millisecond)),
		validation.Field(&c.PaddleStep, validation.Min(0.0).Exclusive(), validation.Max(float64(550))),
		validation.Field(&c.FrameRate, validation.Min(1), validation.Max(1000)),
		validation.Field(&c.Scale, validation.Min(0.0).Exclusive(), validation.Max(8.0)),
		validation.Field(&c.StatusPort, validation.Min(0), validation.Max(65535)),
		validation.Field(&c.StatusBind, validation.When(c.StatusPort > 0, validation.Required, is.Host)),
	)
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PONG")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "pong",
		Short:         "A networked two-player Pong client.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.BoolVarP(&cfg.Connect, "connect", "c", false, "connect to the server on start-up (env: PONG_CONNECT)")
	fs.DurationVar(&cfg.ConnectTimeout, "connect-timeout", 10*time.Second, "time allowed for the websocket handshake (env: PONG_CONNECT_TIMEOUT)")
	fs.IntVar(&cfg.FrameRate, "frame-rate", 60, "frames per second when running headless (env: PONG_FRAME_RATE)")
	fs.BoolVar(&cfg.Headless, "headless", false, "run without a window (env: PONG_HEADLESS)")
	fs.Float64Var(&cfg.PaddleStep, "paddle-step", 6, "paddle movement per frame while a key is held (env: PONG_PADDLE_STEP)")
	fs.BoolVar(&cfg.Profile, "profile", false, "register net/http/pprof handlers on the status server (env: PONG_PROFILE)")
	fs.Float64Var(&cfg.Scale, "scale", 1, "window scale factor (env: PONG_SCALE)")
	fs.DurationVar(&cfg.SendInterval, "send-interval", 50*time.Millisecond, "minimum time between position updates (env: PONG_SEND_INTERVAL)")
	fs.StringVarP(&cfg.Server, "server", "s", "localhost:8765", "game server address (env: PONG_SERVER)")
	fs.StringVar(&cfg.StatusBind, "status-bind", "127.0.0.1", "address for the status server to bind to (env: PONG_STATUS_BIND)")
	fs.IntVarP(&cfg.StatusPort, "status-port", "p", 0, "port for the status server, 0 to disable (env: PONG_STATUS_PORT)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "display additional output (env: PONG_VERBOSE)")
	fs.BoolVarP(&cfg.Version, "version", "V", false, "display version and exit (env: PONG_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("pong v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
