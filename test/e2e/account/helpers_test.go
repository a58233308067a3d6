//go:build e2e

package account_test

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
)

const (
	testImageName = "accounts-dev-test:latest"
	testIssuer    = "accounts-e2e"
)

// TestMain builds the service image once for the whole suite.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Account Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Account Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/accountd/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	_ = exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName).Run()
}

type accountContainer struct {
	testcontainers.Container
	URL string
}

// setupAccountContainer starts the service with relaxed rate limits unless
// env overrides them.
func setupAccountContainer(t *testing.T, env map[string]string) *accountContainer {
	t.Helper()
	ctx := context.Background()

	vars := map[string]string{
		"ACCOUNT_ISSUER":   testIssuer,
		"ACCOUNT_NUM_KEYS": "2",
		"ENV":              "test",
		"LOG_LEVEL":        "info",
		"LOG_FORMAT":       "json",

		"RATELIMIT_STRICT_REQUESTS":   "1000",
		"RATELIMIT_STRICT_WINDOW_SEC": "60",
		"RATELIMIT_STRICT_BURST":      "1000",
		"RATELIMIT_MODERATE_REQUESTS": "1000",
		"RATELIMIT_MODERATE_BURST":    "1000",
	}
	for k, v := range env {
		if v == "" {
			delete(vars, k)
			continue
		}
		vars[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Env:          vars,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	return &accountContainer{
		Container: container,
		URL:       fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}

func (c *accountContainer) account() *accountsdk.Account {
	return accountsdk.NewAccount(cryptox.NewSodium(), c.URL)
}

// recoveryToken scrapes the most recent recovery token for email out of the
// container log, where the development mailer writes it.
func (c *accountContainer) recoveryToken(t *testing.T, email string) string {
	t.Helper()

	var token string
	require.Eventually(t, func() bool {
		logs, err := c.Logs(context.Background())
		if err != nil {
			return false
		}
		defer logs.Close()

		sc := bufio.NewScanner(logs)
		for sc.Scan() {
			line := sc.Bytes()
			start := indexJSON(line)
			if start < 0 {
				continue
			}

			var entry struct {
				To    string `json:"to"`
				Token string `json:"token"`
			}
			if json.Unmarshal(line[start:], &entry) == nil && entry.To == email && entry.Token != "" {
				token = entry.Token
			}
		}
		return token != ""
	}, 10*time.Second, 200*time.Millisecond)

	return token
}

// indexJSON skips the docker log stream header, if any.
func indexJSON(line []byte) int {
	for i, b := range line {
		if b == '{' {
			return i
		}
	}
	return -1
}
