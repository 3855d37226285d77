package repository

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"patients-management/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "patients_test"
)

// startPostgres runs a throwaway postgres:16-alpine container through the
// docker CLI and returns its connection settings with a cleanup function.
func startPostgres(ctx context.Context) (config.DBConfig, func(), error) {
	if _, err := exec.LookPath("docker"); err != nil {
		return config.DBConfig{}, nil, fmt.Errorf("docker not available: %w", err)
	}

	port, err := getFreePort()
	if err != nil {
		return config.DBConfig{}, nil, fmt.Errorf("find free port: %w", err)
	}

	containerName := fmt.Sprintf("patients-repository-test-%d", port)
	exec.CommandContext(ctx, "docker", "rm", "-f", containerName).Run()

	cmd := exec.CommandContext(ctx, "docker", "run",
		"--name", containerName,
		"-d",
		"-p", fmt.Sprintf("%d:5432", port),
		"-e", "POSTGRES_USER="+testDBUser,
		"-e", "POSTGRES_PASSWORD="+testDBPassword,
		"-e", "POSTGRES_DB="+testDBName,
		"postgres:16-alpine",
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return config.DBConfig{}, nil, fmt.Errorf("docker run: %w\noutput: %s", err, string(output))
	}
	containerID := strings.TrimSpace(string(output))

	cleanup := func() {
		exec.Command("docker", "rm", "-f", containerID).Run()
	}

	cfg := config.DBConfig{
		Host:         "localhost",
		Port:         strconv.Itoa(port),
		User:         testDBUser,
		Password:     testDBPassword,
		Name:         testDBName,
		SSLMode:      "disable",
		MaxIdleConns: 2,
		MaxOpenConns: 10,
	}
	connStr := fmt.Sprintf("postgres://%s:%s@localhost:%d/%s?sslmode=disable", testDBUser, testDBPassword, port, testDBName)
	if err := waitForPostgres(ctx, connStr, 30*time.Second); err != nil {
		cleanup()
		return config.DBConfig{}, nil, fmt.Errorf("wait for postgres: %w", err)
	}

	return cfg, cleanup, nil
}

func getFreePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// waitForPostgres polls until the server accepts connections and answers a ping.
func waitForPostgres(ctx context.Context, connStr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		pool, err := pgxpool.New(connCtx, connStr)
		if err == nil {
			err = pool.Ping(connCtx)
			pool.Close()
		}
		cancel()
		if err == nil {
			return nil
		}

		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("postgres not ready after %v", timeout)
}
