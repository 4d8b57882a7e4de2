package main

import (
	"context"
	"os"

	"github.com/verilsp/verilsp/lsp"
	"github.com/verilsp/verilsp/rpc"
	"github.com/verilsp/verilsp/server"
)

func runServe(logFile string, verbose bool) error {
	ctx := context.Background()
	lg, w := getLogger(logFile)
	stream := rpc.NewHeaderStream(os.Stdin, os.Stdout)
	conn := rpc.NewConn(stream, lg)
	client := lsp.ClientDispatcher(conn)
	srv := server.New(lg, client)
	defer func() {
		if err := srv.Shutdown(ctx); err != nil {
			lg.Println("Error shutting down server:", err)
		}
	}()
	ctx = lsp.WithClient(ctx, client)
	setupSlog(w, verbose)
	conn.Run(ctx, lsp.ServerHandler(srv, rpc.MethodNotFound))
	return nil
}
