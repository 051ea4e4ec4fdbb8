package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func exampleConfigPath(t *testing.T) string {
	t.Helper()
	configPath, err := filepath.Abs(filepath.Join("..", "..", "configs", "mldr.example.yaml"))
	require.NoError(t, err)
	require.FileExists(t, configPath)
	return configPath
}

func clearKeys(t *testing.T) {
	t.Helper()
	for _, name := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GOOGLE_API_KEY", "PERPLEXITY_API_KEY", "GROK_API_KEY"} {
		t.Setenv(name, "")
	}
}

func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runRoot(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "commit:")
}

func TestDoctorWithExampleConfig(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("ANTHROPIC_API_KEY", " sk-anthropic ")

	out, _, err := runRoot(t, "doctor", "--config", exampleConfigPath(t))
	require.NoError(t, err)
	require.Contains(t, out, "Config OK. Primary: gpt, claude; chairman: gpt")
	require.Contains(t, out, "OPENAI_API_KEY=set")
	require.Contains(t, out, "All primary models ready.")
	require.NotContains(t, out, "sk-openai")
}

func TestDoctorReportsMissingCredentials(t *testing.T) {
	clearKeys(t)
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	out, logs, err := runRoot(t, "doctor", "--config", exampleConfigPath(t), "--log-format", "json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 readiness issue(s)")
	require.Contains(t, out, "ANTHROPIC_API_KEY=missing")
	require.Contains(t, logs, `"model":"claude"`)
	require.Contains(t, logs, `"kind":"missing_credential"`)
}

func TestDoctorReadsEnvFile(t *testing.T) {
	clearKeys(t)
	require.NoError(t, os.Unsetenv("ANTHROPIC_API_KEY"))
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("ANTHROPIC_API_KEY=sk-from-file\n"), 0o600))

	out, _, err := runRoot(t, "doctor", "--config", exampleConfigPath(t), "--env-file", envPath, "--metrics")
	require.NoError(t, err)
	require.Contains(t, out, "ANTHROPIC_API_KEY=set")
	require.Contains(t, out, `mldr_model_credential_present{model="claude"} 1`)
}

func TestDoctorRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mldr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  primary_models: [claude]\n  chairman_model: gpt\n"), 0o644))

	_, _, err := runRoot(t, "doctor", "--config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be included in primary_models")
}

func TestDoctorMetricsOnLoadFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mldr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pipeline:\n  primary_models: []\n"), 0o644))

	out, _, err := runRoot(t, "doctor", "--config", path, "--metrics")
	require.Error(t, err)
	require.Contains(t, out, `mldr_config_load_errors_total{reason="config"} 1`)

	envMissing := filepath.Join(t.TempDir(), "missing.env")
	out, _, err = runRoot(t, "doctor", "--config", exampleConfigPath(t), "--env-file", envMissing, "--metrics")
	require.Error(t, err)
	require.Contains(t, out, `mldr_config_load_errors_total{reason="env_file"} 1`)
}

func TestModelsCommandLogsConfigSource(t *testing.T) {
	configPath := exampleConfigPath(t)
	_, logs, err := runRoot(t, "models", "--config", configPath, "--log-level", "debug", "--log-format", "json")
	require.NoError(t, err)
	require.Contains(t, logs, `"msg":"loaded config"`)
	require.Contains(t, logs, configPath)
}

func TestModelsCommand(t *testing.T) {
	out, _, err := runRoot(t, "models", "--config", exampleConfigPath(t))
	require.NoError(t, err)
	for _, want := range []string{"gpt-4o", "PERPLEXITY_API_KEY", "GROK_API_KEY", "disabled"} {
		require.Contains(t, out, want)
	}
}

func TestConfigShowCommand(t *testing.T) {
	out, _, err := runRoot(t, "config", "show", "--config", exampleConfigPath(t))
	require.NoError(t, err)
	require.Contains(t, out, "chairman_model: gpt")
	require.Contains(t, out, "model_name: sonar-pro")
}
