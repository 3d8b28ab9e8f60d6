package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/qrinvite/internal/testutil/fakeapi"
)

// cliRunner runs the built qrinvite binary as separate processes sharing one session directory
type cliRunner struct {
	binaryPath string
	apiURL     string
	sessionDir string
	home       string
}

func newCLIRunner(t *testing.T, apiURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "qrinvite-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/qrinvite")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		apiURL:     apiURL,
		sessionDir: t.TempDir(),
		home:       t.TempDir(),
	}
}

// run executes the CLI with JSON output and returns stdout and stderr separately
func (r *cliRunner) run(args ...string) (string, string, error) {
	fullArgs := append([]string{
		"--api-url", r.apiURL,
		"--session-dir", r.sessionDir,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "HOME="+r.home)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

type identityResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Greeting string `json:"greeting"`
}

type createResponse struct {
	InviteCode string `json:"invite_code"`
	InviteID   string `json:"invite_id"`
	File       string `json:"file"`
}

type validateResponse struct {
	Valid      bool   `json:"valid"`
	InviteCode string `json:"invite_code"`
	Message    string `json:"message"`
}

type listResponse struct {
	Invites []struct {
		InviteCode  string `json:"invite_code"`
		IsValidated bool   `json:"is_validated"`
	} `json:"invites"`
	Counts struct {
		Total     int `json:"total"`
		Validated int `json:"validated"`
		Pending   int `json:"pending"`
	} `json:"counts"`
}

func TestCLI_HealthCheck(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	cli := newCLIRunner(t, api.BaseURL())

	output, stderr, err := cli.run("health")
	require.NoError(t, err, "stderr: %s", stderr)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestCLI_SessionSurvivesProcesses(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	cli := newCLIRunner(t, api.BaseURL())

	_, _, err := cli.run("whoami")
	require.Error(t, err, "whoami must fail before login")

	_, stderr, err := cli.run("login", "-u", "admin", "-p", "admin123")
	require.NoError(t, err, "stderr: %s", stderr)

	output, stderr, err := cli.run("whoami")
	require.NoError(t, err, "stderr: %s", stderr)

	var who identityResponse
	require.NoError(t, json.Unmarshal([]byte(output), &who))
	assert.Equal(t, "admin", who.Username)
	assert.Equal(t, "Administrador", who.Name)
	assert.Equal(t, "Olá, Administrador", who.Greeting)

	// Another tab does not share the identity
	_, _, err = cli.run("--tab", "other", "whoami")
	assert.Error(t, err)

	_, stderr, err = cli.run("logout")
	require.NoError(t, err, "stderr: %s", stderr)

	_, _, err = cli.run("whoami")
	assert.Error(t, err)
}

func TestCLI_InviteFlow(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	cli := newCLIRunner(t, api.BaseURL())
	_, stderr, err := cli.run("login", "-u", "user", "-p", "user123")
	require.NoError(t, err, "stderr: %s", stderr)

	outDir := t.TempDir()
	output, stderr, err := cli.run("invite", "create", "--data", "Festa", "--out", outDir)
	require.NoError(t, err, "stderr: %s", stderr)

	var created createResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	require.NotEmpty(t, created.InviteCode)
	assert.Equal(t, filepath.Join(outDir, "qrcode_"+created.InviteCode+".png"), created.File)
	assert.FileExists(t, created.File)

	output, stderr, err = cli.run("invite", "validate", created.File)
	require.NoError(t, err, "stderr: %s", stderr)

	var validated validateResponse
	require.NoError(t, json.Unmarshal([]byte(output), &validated))
	assert.True(t, validated.Valid)
	assert.Equal(t, created.InviteCode, validated.InviteCode)

	output, stderr, err = cli.run("invite", "list", "--status", "validated")
	require.NoError(t, err, "stderr: %s", stderr)

	var list listResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	require.Len(t, list.Invites, 1)
	assert.Equal(t, created.InviteCode, list.Invites[0].InviteCode)
	assert.Equal(t, 1, list.Counts.Total)
	assert.Equal(t, 1, list.Counts.Validated)
	assert.Equal(t, 0, list.Counts.Pending)
}
