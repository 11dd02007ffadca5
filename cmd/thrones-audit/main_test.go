package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_thrones_audit/internal/core/domain"
)

func startCatalog(t *testing.T, characters []domain.Character) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &fasthttp.Server{Handler: func(ctx *fasthttp.RequestCtx) {
		switch string(ctx.Path()) {
		case "/api/v2/Characters":
			body, _ := json.Marshal(characters)
			ctx.SetContentType("application/json")
			ctx.SetBody(body)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
		}
	}}
	go func() { _ = server.Serve(ln) }()
	t.Cleanup(func() { _ = server.Shutdown() })

	return "http://" + ln.Addr().String() + "/api/v2"
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runCLIWithLog(t, args...)
	return out, err
}

// runCLIWithLog runs the CLI with logs sent to a temporary file and returns
// the report output and the log file contents.
func runCLIWithLog(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "audit.log")
	a := &app{}
	var out bytes.Buffer
	a.stdout = &out

	err := execute(context.Background(), a, append(args, "--log-file", logPath))

	logs, readErr := os.ReadFile(logPath)
	if readErr != nil && !os.IsNotExist(readErr) {
		require.NoError(t, readErr)
	}
	return out.String(), string(logs), err
}

func TestRootCommandRegistersChecks(t *testing.T) {
	cmd := newRootCommand(&app{})
	for _, name := range []string{"status", "profiles", "consistency", "completeness", "fullnames", "families", "images", "write-probe", "all"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestFamiliesCommand(t *testing.T) {
	baseURL := startCatalog(t, []domain.Character{
		{ID: 0, FullName: "Jon Snow", Family: "House Stark"},
		{ID: 1, FullName: "Cersei Lannister", Family: "House Lanister"},
		{ID: 2, FullName: "Varys", Family: ""},
		{ID: 3, FullName: "Bronn", Family: "None"},
	})

	out, err := runCLI(t, "families", "--base-url", baseURL)
	require.NoError(t, err)

	assert.Contains(t, out, "1. Lannister: 1\n2. Stark: 1\n")
	assert.Contains(t, out, "Total characters: 4\n")
	assert.Contains(t, out, "Characters without a family: 1\n")
	assert.Contains(t, out, "Characters with excluded families: 1\n")
	assert.Contains(t, out, "Cersei Lannister belongs to the Lannister family\n")
	assert.Contains(t, out, "Bronn has no family affiliation\n")
}

func TestStatusCommandReportsFailure(t *testing.T) {
	baseURL := startCatalog(t, nil)

	out, err := runCLI(t, "status", "--base-url", baseURL+"/missing")
	require.NoError(t, err)
	assert.Contains(t, out, "Error! Status code is 404")
}

func TestFailedCommandIsLogged(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + ln.Addr().String() + "/api/v2"
	require.NoError(t, ln.Close())

	_, logs, err := runCLIWithLog(t, "families", "--base-url", baseURL, "--timeout", "1s")
	require.Error(t, err)
	assert.Contains(t, logs, "Command failed")
}

func TestInvalidThreshold(t *testing.T) {
	_, err := runCLI(t, "families", "--threshold", "3")
	assert.ErrorContains(t, err, "threshold must be between 0 and 1")
}
