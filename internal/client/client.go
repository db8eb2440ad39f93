// Package client implements the billing client: it sends one well-formed
// request line to the server and streams the response until the terminator.
package client

import (
	"bufio"
	"fmt"
	"io"
	"net"

	"github.com/gyeh/medibill/internal/protocol"
)

// Send dials addr, writes the encoded request line, and copies response
// lines to out until the terminator arrives. The terminator itself is not
// written to out. The connection is closed before returning.
func Send(addr string, req protocol.Request, out io.Writer) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintln(conn, req.Encode()); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Text()
		if line == protocol.Terminator {
			return nil
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return fmt.Errorf("connection closed before %s terminator", protocol.Terminator)
}
