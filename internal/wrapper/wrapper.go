// Package wrapper supervises a stdio MCP server process and guarantees that
// the only bytes reaching the parent's stdout are well-formed JSON-RPC
// messages. Any stray output (stray prints, library noise) would corrupt the
// host's message framing, so it is redirected to stderr instead.
package wrapper

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// isProtocolLine reports whether line is a well-formed JSON-RPC envelope.
type probe struct {
	JSONRPC string `json:"jsonrpc"`
}

func isProtocolLine(line []byte) bool {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return false
	}
	var p probe
	if err := json.Unmarshal(line, &p); err != nil {
		return false
	}
	return p.JSONRPC != ""
}

// Run spawns argv as a child process and filters its stdout line-wise:
// protocol lines go to stdout, everything else to stderr. SIGINT/SIGTERM are
// forwarded to the child. The return value is the child's exit code.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer) (int, error) {
	if len(argv) == 0 {
		return 1, fmt.Errorf("wrapper: no command given")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stderr = stderr

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return 1, fmt.Errorf("wrapper: stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return 1, fmt.Errorf("wrapper: start %s: %w", argv[0], err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		for sig := range sigCh {
			slog.Info("wrapper: forwarding signal", "signal", sig)
			_ = cmd.Process.Signal(sig)
		}
	}()

	Filter(stdoutPipe, stdout, stderr)

	err = cmd.Wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("wrapper: wait: %w", err)
	}
	return 0, nil
}

// Filter copies r to protocol or diag line by line until EOF.
func Filter(r io.Reader, protocol, diag io.Writer) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if isProtocolLine(line) {
			_, _ = protocol.Write(append(line, '\n'))
		} else if len(bytes.TrimSpace(line)) > 0 {
			_, _ = diag.Write(append(line, '\n'))
		}
	}
}
