// SPDX-FileCopyrightText: 2025 Patisson Company
// SPDX-License-Identifier: MIT

/*
Package applauncher bootstraps web service processes.  It binds the listening
socket, registers the service with a consul agent health check, optionally
wires OpenTelemetry tracing, and hands the bound listener to a transport
specific Runner.  Each setup step is narrated on the console as a bordered
block drawn by the block subpackage.

Components can be wired by hand through New, ConsulRegister, and Run, or
composed into an fx application with Provide.
*/
package applauncher
