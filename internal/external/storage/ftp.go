package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

var ErrNotConfigured = errors.New("remote storage not configured")

type FTPConfig struct {
	Host     string
	User     string
	Password string
	BasePath string
	Timeout  time.Duration
}

// FTPStore uploads photo evidence to the hosting box under
// <base>/<employee>/<activity>/<filename>. Connections are scoped per call:
// dial, use, quit on every path.
type FTPStore struct {
	cfg FTPConfig
}

func NewFTPStore(cfg FTPConfig) (*FTPStore, error) {
	if cfg.Host == "" || cfg.User == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &FTPStore{cfg: cfg}, nil
}

func (s *FTPStore) dial(ctx context.Context) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(s.cfg.Host, ftp.DialWithContext(ctx), ftp.DialWithTimeout(s.cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", s.cfg.Host, err)
	}
	if err := conn.Login(s.cfg.User, s.cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	return conn, nil
}

func (s *FTPStore) Upload(ctx context.Context, localPath, employeeName, activityType, remoteFilename string) (string, error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = conn.Quit() }()

	remoteDir := path.Join(s.cfg.BasePath, sanitize(employeeName), sanitize(activityType))
	if err := makeDirs(conn, remoteDir); err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	remotePath := path.Join(remoteDir, remoteFilename)
	if err := conn.Stor(remotePath, file); err != nil {
		return "", fmt.Errorf("ftp store %s: %w", remotePath, err)
	}
	return remotePath, nil
}

func (s *FTPStore) Delete(ctx context.Context, remotePath string) error {
	if remotePath == "" {
		return nil
	}
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Delete(remotePath); err != nil {
		return fmt.Errorf("ftp delete %s: %w", remotePath, err)
	}
	return nil
}

func makeDirs(conn *ftp.ServerConn, remoteDir string) error {
	built := ""
	for _, part := range strings.Split(remoteDir, "/") {
		if part == "" {
			continue
		}
		built = path.Join(built, part)
		// MakeDir fails when the directory already exists; that is fine.
		_ = conn.MakeDir(built)
	}
	return nil
}

func sanitize(value string) string {
	value = strings.ReplaceAll(value, " ", "_")
	return strings.ReplaceAll(value, ".", "")
}
