// Package connector provides remote command execution and file transfer for
// cluster nodes over SSH. It is the transport layer underneath the topology
// registry and the spec/state helpers; nothing above it opens sockets itself.
package connector

import (
	"context"
	"time"
)

// ConnectionCfg holds all parameters needed to establish a connection.
type ConnectionCfg struct {
	Host           string
	Port           int
	User           string
	Password       string
	PrivateKey     []byte
	PrivateKeyPath string
	Timeout        time.Duration
}

// ExecOptions controls a single remote command execution.
type ExecOptions struct {
	// Sudo runs the command with elevated privilege.
	Sudo bool
	// Timeout bounds the execution; zero means no additional bound beyond ctx.
	Timeout time.Duration
	// Env holds extra KEY=VALUE pairs for the remote session.
	Env []string
}

// FileTransferOptions controls a remote file write.
type FileTransferOptions struct {
	// Permissions is an octal mode string such as "0644". Empty leaves the
	// remote default untouched.
	Permissions string
	// Sudo writes via a staging path and moves into place with elevated
	// privilege, for destinations the login user cannot touch directly.
	Sudo bool
}

// Connector is the interface for interacting with a single host. A Connector
// is not safe for concurrent use; callers serialize access per host.
type Connector interface {
	Connect(ctx context.Context, cfg ConnectionCfg) error
	// Exec runs cmd and returns stdout and stderr. A non-zero exit is
	// reported as *CommandError.
	Exec(ctx context.Context, cmd string, opts *ExecOptions) (stdout, stderr []byte, err error)
	// WriteFile creates or replaces destPath with content, flushing before
	// return.
	WriteFile(ctx context.Context, content []byte, destPath string, opts *FileTransferOptions) error
	IsConnected() bool
	Close() error
}
