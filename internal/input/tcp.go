package input

import (
	"context"
	"errors"
	"flowgger/internal/config"
	"flowgger/internal/global"
	"flowgger/internal/logctx"
	"fmt"
	"net"
	"runtime"
	"sync"
)

// Plain TCP listener. In the default mode every accepted connection gets its
// own goroutine that can saturate one core at parse time. In cooperative
// mode a fixed pool of workers serves connections, each worker running one
// session to completion before taking the next; further connections wait for
// a free worker. Inactivity timeouts are not enforced there, so an idle
// connection keeps its worker.
type TCPInput struct {
	cfg         config.InputConfig
	pipe        Pipeline
	cooperative bool
}

func (in *TCPInput) Run(ctx context.Context) (err error) {
	listener, err := net.Listen("tcp", in.cfg.Listen)
	if err != nil {
		err = fmt.Errorf("failed to listen on %s: %v", in.cfg.Listen, err)
		return
	}
	logctx.LogEvent(ctx, global.VerbosityStandard, global.InfoLog,
		"Listening on %s (tcp)\n", in.cfg.Listen)

	serveListener(ctx, listener, in.cfg, in.pipe, in.cooperative)
	return
}

// Accept loop shared by the tcp and tls drivers
func serveListener(ctx context.Context, listener net.Listener, cfg config.InputConfig, pipe Pipeline, cooperative bool) {
	// unblock Accept on shutdown
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	var wg sync.WaitGroup
	defer wg.Wait()

	accept := func(conn net.Conn) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runSession(ctx, cfg, pipe, conn)
		}()
	}
	if cooperative {
		accept = newConnPool(ctx, &wg, cfg, pipe)
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return
			}
			logctx.LogEvent(ctx, global.VerbosityStandard, global.WarnLog,
				"failed to accept a connection: %v\n", err)
			continue
		}
		accept(conn)
	}
}

// A fixed pool of session workers fed from a connection channel.
// Each worker handles one connection at a time, so at most workers sessions
// run concurrently.
func newConnPool(ctx context.Context, wg *sync.WaitGroup, cfg config.InputConfig, pipe Pipeline) (accept func(net.Conn)) {
	workers := cfg.CoThreads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	conns := make(chan net.Conn, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case conn := <-conns:
					// timeouts are not honored in cooperative mode
					poolCfg := cfg
					poolCfg.Timeout = 0
					runSession(ctx, poolCfg, pipe, conn)
				}
			}
		}()
	}

	accept = func(conn net.Conn) {
		select {
		case conns <- conn:
		case <-ctx.Done():
			conn.Close()
		}
	}
	return
}
