package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-json2beamer/internal/server"
)

// serveHTTP is a test seam for running the HTTP server.
var serveHTTP = func(ctx context.Context, srv *server.Server) error {
	return srv.ListenAndServe(ctx)
}

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		addr := fs.String("addr", server.DefaultAddr, "Address to listen on")
		origins := fs.String("origins", "*", "Comma separated CORS origins")
		logs := bindLogFlags(fs)
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if strings.TrimSpace(*addr) == "" {
			fmt.Fprintln(stderr, "Missing -addr")
			return ExitUsage
		}

		logger := logs.logger(stderr)
		defer func() { _ = logger.Sync() }()

		srv, err := server.New(server.Config{
			Addr:           *addr,
			AllowedOrigins: splitList(*origins),
		}, server.WithLogger(logger))
		if err != nil {
			logger.Error("server setup failed", zap.Error(err))
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(stdout, "Serving json2beamer at http://%s\n", srv.Addr())
		if err := serveHTTP(ctx, srv); err != nil {
			logger.Error("server error", zap.Error(err))
			return ExitError
		}
		return ExitOK
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
