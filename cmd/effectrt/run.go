package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joeycumines/go-effectrt"
	"github.com/joeycumines/go-effectrt/internal/config"
	"github.com/joeycumines/go-effectrt/internal/programs"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   `run <program>`,
		Short: `Run a bundled program`,
		Long:  `Runs the named program to completion, writing its output to stdout, and logs to stderr. Exits non-zero if the program fails, or stops without calling exit.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, ok := programs.Lookup(args[0])
			if !ok {
				return fmt.Errorf("effectrt: unknown program %q (see: effectrt programs)", args[0])
			}
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runProgram(ctx, cfg, program, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := runCmd.Flags()
	flags.String(`config`, ``, `YAML config file`)
	flags.String(`backend`, config.BackendTick, `time backend: tick or reactor`)
	flags.Int(`queue-capacity`, 0, `maximum pending continuations (0 for the default)`)
	flags.Int(`timer-capacity`, 0, `maximum pending sleeps (0 for the default)`)
	flags.Duration(`reactor-delay`, 0, `real time per sleep, reactor backend (0 for the default)`)
	flags.String(`log-level`, logiface.LevelWarning.String(), `log level, e.g. err, info, debug`)
	flags.String(`metrics-addr`, ``, `serve prometheus metrics on this address`)

	return runCmd
}

// loadConfig reads the config file, if any, then applies explicitly set flags.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if path, _ := flags.GetString(`config`); path != `` {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}

	if flags.Changed(`backend`) {
		cfg.Backend, _ = flags.GetString(`backend`)
	}
	if flags.Changed(`queue-capacity`) {
		cfg.QueueCapacity, _ = flags.GetInt(`queue-capacity`)
	}
	if flags.Changed(`timer-capacity`) {
		cfg.TimerCapacity, _ = flags.GetInt(`timer-capacity`)
	}
	if flags.Changed(`reactor-delay`) {
		d, _ := flags.GetDuration(`reactor-delay`)
		cfg.ReactorDelay = config.Duration(d)
	}
	if flags.Changed(`log-level`) {
		cfg.LogLevel, _ = flags.GetString(`log-level`)
	}
	if flags.Changed(`metrics-addr`) {
		cfg.MetricsAddr, _ = flags.GetString(`metrics-addr`)
	}

	return cfg, cfg.Validate()
}

func runProgram(ctx context.Context, cfg config.Config, program programs.Program, stdout, stderr io.Writer) error {
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(stderr)),
		stumpy.L.WithLevel(cfg.Level()),
	).Logger()

	reg := prometheus.NewRegistry()
	metrics, err := effectrt.NewMetrics(reg)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != `` {
		shutdown, err := serveMetrics(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	driver, err := newTimeDriver(cfg)
	if err != nil {
		return err
	}

	opts := []effectrt.Option{
		effectrt.WithTimeDriver(driver),
		effectrt.WithOutput(stdout),
		effectrt.WithLogger(logger),
		effectrt.WithMetrics(metrics),
	}
	if cfg.QueueCapacity > 0 {
		opts = append(opts, effectrt.WithQueueCapacity(cfg.QueueCapacity))
	}

	rt, err := effectrt.New(opts...)
	if err != nil {
		return err
	}
	if err := rt.Start(program.New()); err != nil {
		return err
	}

	logger.Info().
		Str(`program`, program.Name).
		Str(`backend`, cfg.Backend).
		Log(`effectrt: starting`)

	return rt.Run(ctx)
}

func newTimeDriver(cfg config.Config) (effectrt.TimeDriver, error) {
	switch cfg.Backend {
	case config.BackendReactor:
		loop, err := effectrt.NewEventLoop()
		if err != nil {
			return nil, err
		}
		return effectrt.NewReactorDriver(loop, time.Duration(cfg.ReactorDelay), cfg.TimerCapacity), nil
	default:
		return effectrt.NewTickDriver(cfg.TimerCapacity), nil
	}
}

// serveMetrics serves reg over HTTP, until the returned func is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *logiface.Logger[logiface.Event]) (func(), error) {
	listener, err := net.Listen(`tcp`, addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(`/metrics`, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Err().Err(err).Log(`effectrt: metrics server failed`)
		}
	}()
	logger.Info().Str(`addr`, listener.Addr().String()).Log(`effectrt: serving metrics`)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}, nil
}
