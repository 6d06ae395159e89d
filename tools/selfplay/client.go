package main

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// Client is one dvonn-engine subprocess speaking the Start/move/Quit line
// protocol, adapted from blunext-chess/tools/tournament/uci_client.go's
// Engine: same stdin/stdout-pipe-plus-timeout shape, UCI request/response
// framing swapped for the plain line protocol.
type Client struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  *bufio.Reader
	name    string
	timeout time.Duration
}

// NewClient starts path with the given extra arguments (typically search
// limits like --depth or --time) and wires its stdin/stdout.
func NewClient(path string, args []string) (*Client, error) {
	cmd := exec.Command(path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("selfplay: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("selfplay: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("selfplay: start %s: %w", path, err)
	}

	return &Client{
		cmd:     cmd,
		stdin:   stdin,
		stdout:  bufio.NewReader(stdout),
		name:    path,
		timeout: 30 * time.Second,
	}, nil
}

// Send writes a single protocol line (the literal "Start", or a move
// token) to the subprocess.
func (c *Client) Send(line string) error {
	_, err := fmt.Fprintln(c.stdin, line)
	return err
}

// ReadMove blocks for the subprocess's next move line, with a timeout
// generous enough to cover any --time budget passed to NewClient.
func (c *Client) ReadMove() (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := c.stdout.ReadString('\n')
		ch <- result{strings.TrimSpace(line), err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("selfplay: reading move from %s: %w", c.name, r.err)
		}
		return r.line, nil
	case <-time.After(c.timeout):
		return "", fmt.Errorf("selfplay: timeout waiting for a move from %s", c.name)
	}
}

// Quit sends the Quit line (with a human-readable result summary, per the
// protocol's non-standard extension) and waits for the process to exit.
func (c *Client) Quit(result string) {
	_, _ = fmt.Fprintln(c.stdin, "Quit")
	_, _ = fmt.Fprintln(c.stdin, result)
	_ = c.cmd.Wait()
}
