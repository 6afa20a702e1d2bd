//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestFaultlineWithMySQL tests the faultline CLI with a MySQL cache backend.
func TestFaultlineWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "faultline",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/faultline?parseTime=true", host, port.Port())

	// Set environment variables
	_ = os.Setenv("FAULTLINE_CACHE_BACKEND", "mysql")
	_ = os.Setenv("FAULTLINE_CACHE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("FAULTLINE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("FAULTLINE_CACHE_DB_CONNECT") }()

	runCachedAnalysisCycle(t, "mysql", connStr)
}

// TestFaultlineWithPostgres tests the faultline CLI with a PostgreSQL cache backend.
func TestFaultlineWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	// Set environment variables
	_ = os.Setenv("FAULTLINE_CACHE_BACKEND", "postgresql")
	_ = os.Setenv("FAULTLINE_CACHE_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("FAULTLINE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("FAULTLINE_CACHE_DB_CONNECT") }()

	runCachedAnalysisCycle(t, "postgresql", connStr)
}

// runCachedAnalysisCycle clears the cache, runs an analysis twice so the
// second run hits the cache, and checks cache status against the backend.
func runCachedAnalysisCycle(t *testing.T, backend, connStr string) {
	t.Helper()

	// Run faultline cache clear
	err := runFaultlineCommand(t, "cache", "clear")
	require.NoError(t, err)

	// First run populates the cache, second run reads it back
	err = runFaultlineCommand(t, "recurrence", "testdata/tickets.csv", "--now", pinnedNow, "--limit", "5")
	require.NoError(t, err)
	err = runFaultlineCommand(t, "recurrence", "testdata/tickets.csv", "--now", pinnedNow, "--limit", "5")
	require.NoError(t, err)

	// Run faultline cache status
	err = runFaultlineCommand(t, "cache", "status")
	require.NoError(t, err)
}

func runFaultlineCommand(t *testing.T, args ...string) error {
	faultlinePath := getFaultlineBinary()
	cmd := exec.Command(faultlinePath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
