package main

import (
	"context"
	"flag"
	"flowgger/internal/config"
	"flowgger/internal/daemon"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	requestedLogLevel := flags.Int("verbosity", global.VerbosityStandard, "log output detail level (0-5)")
	showVersion := flags.Bool("version", false, "print version and exit")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <config.toml>\n", global.ProgBaseName)
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("%s %s\n", global.ProgBaseName, global.ProgVersion)
		fmt.Printf("Built using %s(%s) for %s on %s\n", runtime.Version(), runtime.Compiler, runtime.GOOS, runtime.GOARCH)
		return
	}

	if flags.NArg() != 1 {
		flags.Usage()
		code = 1
		return
	}
	configPath := flags.Arg(0)

	// Exit signals trigger a cooperative shutdown: stop accepting, drain, flush
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Setting global logging
	logger := logctx.NewLogger("global", *requestedLogLevel, ctx.Done())
	ctx = logctx.WithLogger(ctx, logger)
	logctx.StartWatcher(logger, os.Stderr)
	defer func() {
		cancel()
		logger.Wake()
		logger.Wait()
	}()

	global.Verbosity = *requestedLogLevel
	global.PID = os.Getpid()
	global.Hostname, _ = os.Hostname()

	tomlConfig, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		code = 1
		return
	}
	cfg, err := tomlConfig.NewDaemonConf()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration in '%s': %v\n", configPath, err)
		code = 1
		return
	}

	if err = daemon.NewDaemon(cfg).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		code = 1
		return
	}
	return
}
