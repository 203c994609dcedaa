//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIEndpoint string
	Email       string
	Password    string
	SoocialPath string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIEndpoint: os.Getenv("SOOCIAL_API"),
		Email:       os.Getenv("SOOCIAL_EMAIL"),
		Password:    os.Getenv("SOOCIAL_PASSWORD"),
		SoocialPath: getSoocialPath(),
		Verbose:     os.Getenv("SOOCIAL_VERBOSE") == "true",
	}
}

func getSoocialPath() string {
	if path := os.Getenv("SOOCIAL_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../soocial", "./soocial", "../soocial"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "soocial"
}

// SkipIfMissingConfig skips the test unless credentials and a binary exist.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Email == "" || config.Password == "" {
		t.Skip("SOOCIAL_EMAIL or SOOCIAL_PASSWORD not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.SoocialPath); err != nil {
		t.Skipf("soocial binary not found at %s, skipping integration test", config.SoocialPath)
	}
}

// CommandRunner runs the soocial binary with the test credentials.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a soocial command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.SoocialPath, args...)
	cmd.Env = append(os.Environ(),
		"SOOCIAL_EMAIL="+runner.config.Email,
		"SOOCIAL_PASSWORD="+runner.config.Password,
	)

	if runner.config.APIEndpoint != "" {
		cmd.Env = append(cmd.Env, "SOOCIAL_API="+runner.config.APIEndpoint)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.SoocialPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// DeleteContact removes a contact created by a test, logging failures.
func (runner *CommandRunner) DeleteContact(id string) {
	stdout, stderr, err := runner.Run("contacts", "delete", id)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for contact %s: %s\nStderr: %s", id, stdout, stderr)
	}
}

// GenerateTestName creates a unique name for test contacts.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// AssertJSONOutput fails the test unless output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	var data interface{}
	if err := json.Unmarshal([]byte(output), &data); err != nil {
		t.Errorf("Output is not valid JSON: %v\nOutput: %s", err, output)
	}
}
