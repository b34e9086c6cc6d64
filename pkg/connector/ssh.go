package connector

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

const defaultSSHPort = 22

// SSHConnector implements Connector over an SSH client with an SFTP channel
// for file transfer.
type SSHConnector struct {
	client      *ssh.Client
	sftpClient  *sftp.Client
	connCfg     ConnectionCfg
	isConnected bool
}

// NewSSHConnector returns an unconnected SSHConnector.
func NewSSHConnector() *SSHConnector {
	return &SSHConnector{}
}

func buildAuthMethods(cfg ConnectionCfg) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	key := cfg.PrivateKey
	if len(key) == 0 && cfg.PrivateKeyPath != "" {
		data, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key %s: %w", cfg.PrivateKeyPath, err)
		}
		key = data
	}
	if len(key) > 0 {
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no authentication method configured for %s", cfg.Host)
	}
	return methods, nil
}

// Connect dials the host described by cfg.
func (s *SSHConnector) Connect(ctx context.Context, cfg ConnectionCfg) error {
	s.connCfg = cfg

	auth, err := buildAuthMethods(cfg)
	if err != nil {
		return &ConnectionError{Host: cfg.Host, Err: err}
	}

	port := cfg.Port
	if port == 0 {
		port = defaultSSHPort
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), // test clusters are throwaway
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return &ConnectionError{Host: cfg.Host, Err: err}
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if err != nil {
		_ = conn.Close()
		return &ConnectionError{Host: cfg.Host, Err: err}
	}

	s.client = ssh.NewClient(sshConn, chans, reqs)
	s.isConnected = true
	return nil
}

// IsConnected reports whether the underlying connection is still usable.
func (s *SSHConnector) IsConnected() bool {
	if s.client == nil || !s.isConnected {
		return false
	}
	if _, _, err := s.client.SendRequest("keepalive@openssh.com", true, nil); err != nil {
		s.isConnected = false
		return false
	}
	return true
}

// Close shuts down the SFTP channel and the SSH client.
func (s *SSHConnector) Close() error {
	s.isConnected = false
	var firstErr error
	if s.sftpClient != nil {
		if err := s.sftpClient.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close SFTP client for %s: %w", s.connCfg.Host, err)
		}
		s.sftpClient = nil
	}
	if s.client != nil {
		if err := s.client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.client = nil
	}
	return firstErr
}

// Exec runs cmd on the host. Non-zero exits are returned as *CommandError with
// captured stdout/stderr.
func (s *SSHConnector) Exec(ctx context.Context, cmd string, opts *ExecOptions) (stdout, stderr []byte, err error) {
	if !s.IsConnected() {
		return nil, nil, &ConnectionError{Host: s.connCfg.Host, Err: fmt.Errorf("not connected")}
	}

	effective := ExecOptions{}
	if opts != nil {
		effective = *opts
	}
	if effective.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, effective.Timeout)
		defer cancel()
	}

	session, err := s.client.NewSession()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session on %s: %w", s.connCfg.Host, err)
	}
	defer session.Close()

	for _, envVar := range effective.Env {
		parts := strings.SplitN(envVar, "=", 2)
		if len(parts) == 2 {
			_ = session.Setenv(parts[0], parts[1])
		}
	}

	finalCmd := cmd
	if effective.Sudo {
		if s.connCfg.Password != "" {
			finalCmd = "sudo -S -p '' -E -- sh -c " + shellEscape(cmd)
			session.Stdin = strings.NewReader(s.connCfg.Password + "\n")
		} else {
			finalCmd = "sudo -E -- sh -c " + shellEscape(cmd)
		}
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	session.Stdout = &stdoutBuf
	session.Stderr = &stderrBuf

	if err := session.Start(finalCmd); err != nil {
		return stdoutBuf.Bytes(), stderrBuf.Bytes(), fmt.Errorf("failed to start command '%s': %w", cmd, err)
	}

	doneCh := make(chan error, 1)
	go func() { doneCh <- session.Wait() }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		select {
		case <-doneCh:
		case <-time.After(1 * time.Second):
		}
		err = ctx.Err()
	case waitErr := <-doneCh:
		err = waitErr
	}

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*ssh.ExitError); ok {
			exitCode = exitErr.ExitStatus()
		}
		return stdoutBuf.Bytes(), stderrBuf.Bytes(), &CommandError{
			Cmd:        cmd,
			ExitCode:   exitCode,
			Stdout:     stdoutBuf.String(),
			Stderr:     stderrBuf.String(),
			Underlying: err,
		}
	}
	return stdoutBuf.Bytes(), stderrBuf.Bytes(), nil
}

func (s *SSHConnector) ensureSftp() error {
	if s.sftpClient != nil {
		return nil
	}
	if !s.IsConnected() {
		return &ConnectionError{Host: s.connCfg.Host, Err: fmt.Errorf("not connected, cannot initialize SFTP")}
	}
	client, err := sftp.NewClient(s.client)
	if err != nil {
		return fmt.Errorf("failed to create SFTP client for %s: %w", s.connCfg.Host, err)
	}
	s.sftpClient = client
	return nil
}

// WriteFile creates or replaces destPath with content. With Sudo set the
// content is staged under /tmp and moved into place with elevated privilege.
func (s *SSHConnector) WriteFile(ctx context.Context, content []byte, destPath string, opts *FileTransferOptions) error {
	effective := FileTransferOptions{}
	if opts != nil {
		effective = *opts
	}
	if err := s.ensureSftp(); err != nil {
		return err
	}
	if effective.Sudo {
		return s.sudoWrite(ctx, content, destPath, effective)
	}
	return s.sftpWrite(content, destPath, effective.Permissions)
}

func (s *SSHConnector) sftpWrite(content []byte, destPath, permissions string) error {
	if dir := filepath.Dir(destPath); dir != "." && dir != "/" && dir != "" {
		if err := s.sftpClient.MkdirAll(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	f, err := s.sftpClient.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create remote file %s: %w", destPath, err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write remote file %s: %w", destPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to flush remote file %s: %w", destPath, err)
	}
	if permissions != "" {
		mode, err := strconv.ParseUint(permissions, 8, 32)
		if err != nil {
			return fmt.Errorf("invalid permissions format '%s': %w", permissions, err)
		}
		if err := s.sftpClient.Chmod(destPath, os.FileMode(mode)); err != nil {
			return fmt.Errorf("failed to chmod remote file %s: %w", destPath, err)
		}
	}
	return nil
}

func (s *SSHConnector) sudoWrite(ctx context.Context, content []byte, destPath string, opts FileTransferOptions) error {
	tmpPath := filepath.Join("/tmp", fmt.Sprintf("connector-tmp-%d-%s", time.Now().UnixNano(), filepath.Base(destPath)))
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		_, _, _ = s.Exec(cleanupCtx, fmt.Sprintf("rm -f %s", shellEscape(tmpPath)), nil)
	}()

	if err := s.sftpWrite(content, tmpPath, "0600"); err != nil {
		return fmt.Errorf("failed to stage %s for sudo write: %w", destPath, err)
	}

	if dir := filepath.Dir(destPath); dir != "." && dir != "/" && dir != "" {
		if _, stderr, err := s.Exec(ctx, fmt.Sprintf("mkdir -p %s", shellEscape(dir)), &ExecOptions{Sudo: true}); err != nil {
			return fmt.Errorf("failed to create destination directory %s: %s: %w", dir, string(stderr), err)
		}
	}
	if _, stderr, err := s.Exec(ctx, fmt.Sprintf("mv %s %s", shellEscape(tmpPath), shellEscape(destPath)), &ExecOptions{Sudo: true}); err != nil {
		return fmt.Errorf("failed to move file to %s: %s: %w", destPath, string(stderr), err)
	}
	if opts.Permissions != "" {
		if _, err := strconv.ParseUint(opts.Permissions, 8, 32); err != nil {
			return fmt.Errorf("invalid permissions format '%s': %w", opts.Permissions, err)
		}
		if _, stderr, err := s.Exec(ctx, fmt.Sprintf("chmod %s %s", opts.Permissions, shellEscape(destPath)), &ExecOptions{Sudo: true}); err != nil {
			return fmt.Errorf("failed to chmod %s: %s: %w", destPath, string(stderr), err)
		}
	}
	return nil
}

// shellEscape single-quotes s for safe interpolation into a shell command.
func shellEscape(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
