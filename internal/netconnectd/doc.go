// Package netconnectd implements the transaction protocol client for the
// netconnectd network-configuration daemon.
//
// The daemon listens on a Unix domain socket and speaks a minimal framed
// JSON protocol: each transaction opens a fresh connection, writes one
// NUL-terminated JSON request of the form {"<command>": <params>}, and reads
// exactly one NUL-terminated JSON reply carrying either a "result" or an
// "error" key. There is no multiplexing, no correlation IDs, and no
// connection reuse.
//
// Client exposes one typed operation per daemon command plus the composite
// status+network read. It holds only immutable configuration (socket path,
// per-call timeout) and a logger, so a single value can be shared freely
// between a foreground caller and a background poller.
package netconnectd
