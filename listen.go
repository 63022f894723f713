// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

package applauncher

import (
	"net"
	"strconv"
)

// Listen binds a TCP listener on host:port and reports the bound port.
// A zero port binds an ephemeral port chosen by the operating system, which
// is how the launcher supports "any free port" startup.
func Listen(host string, port int) (net.Listener, int, error) {
	l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, 0, err
	}

	return l, l.Addr().(*net.TCPAddr).Port, nil
}

// ReleasePort closes the listener and returns the port it was bound to,
// freeing the port for a worker subprocess to claim.  The window between
// release and the subprocess binding is unavoidable with this handoff style.
func ReleasePort(l net.Listener) int {
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}
