package connector

import (
	"context"
)

// MockConnector is a scriptable Connector used by package tests across the
// repository. Behaviors are overridden by assigning the *Func fields; every
// executed command is captured in ExecHistory for assertions.
type MockConnector struct {
	ConnectFunc   func(ctx context.Context, cfg ConnectionCfg) error
	ExecFunc      func(ctx context.Context, cmd string, opts *ExecOptions) (stdout, stderr []byte, err error)
	WriteFileFunc func(ctx context.Context, content []byte, destPath string, opts *FileTransferOptions) error

	// LastExecCmd stores the most recent command passed to Exec.
	LastExecCmd     string
	LastExecOptions *ExecOptions
	ExecHistory     []string

	// WrittenFiles records destPath -> content for every WriteFile call.
	WrittenFiles map[string][]byte
	// WriteHistory records destination paths in call order.
	WriteHistory []string

	closed bool
}

// NewMockConnector creates a MockConnector whose default behaviors succeed
// with empty output.
func NewMockConnector() *MockConnector {
	mc := &MockConnector{
		WrittenFiles: make(map[string][]byte),
	}
	mc.ConnectFunc = func(ctx context.Context, cfg ConnectionCfg) error { return nil }
	mc.ExecFunc = func(ctx context.Context, cmd string, opts *ExecOptions) ([]byte, []byte, error) {
		return []byte(""), []byte(""), nil
	}
	mc.WriteFileFunc = func(ctx context.Context, content []byte, destPath string, opts *FileTransferOptions) error {
		return nil
	}
	return mc
}

func (m *MockConnector) Connect(ctx context.Context, cfg ConnectionCfg) error {
	return m.ConnectFunc(ctx, cfg)
}

func (m *MockConnector) Exec(ctx context.Context, cmd string, opts *ExecOptions) ([]byte, []byte, error) {
	m.LastExecCmd = cmd
	m.LastExecOptions = opts
	m.ExecHistory = append(m.ExecHistory, cmd)
	return m.ExecFunc(ctx, cmd, opts)
}

func (m *MockConnector) WriteFile(ctx context.Context, content []byte, destPath string, opts *FileTransferOptions) error {
	m.WrittenFiles[destPath] = append([]byte(nil), content...)
	m.WriteHistory = append(m.WriteHistory, destPath)
	return m.WriteFileFunc(ctx, content, destPath, opts)
}

func (m *MockConnector) IsConnected() bool { return !m.closed }

func (m *MockConnector) Close() error {
	m.closed = true
	return nil
}
