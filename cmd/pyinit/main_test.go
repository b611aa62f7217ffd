package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/pyinit/internal/config"
)

func runWith(t *testing.T, args []string, stdin string, env map[string]string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, config.MapEnv(env))
	return code, stdout.String(), stderr.String()
}

func TestRun_PrintsHelpAndExits_When_HelpRequested(t *testing.T) {
	code, stdout, _ := runWith(t, []string{"-h"}, "", nil)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "usage: pyinit [option]")
	assert.Contains(t, stdout, "-X opt")
	assert.NotContains(t, stdout, "\033[", "help is plain when not on a terminal")
}

func TestRun_PrintsVersion_When_VersionRequested(t *testing.T) {
	code, stdout, _ := runWith(t, []string{"-V"}, "", nil)

	assert.Equal(t, 0, code)
	assert.Equal(t, "pyinit dev\n", stdout)
}

func TestRun_ReturnsClassExitCode_When_ConfigurationFails(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		wantCode int
		wantErr  string
	}{
		{name: "unknown option", args: []string{"-z"}, wantCode: 2, wantErr: "pyinit: unknown option -z"},
		{name: "bad argument encoding", args: []string{"\xff"}, wantCode: 3, wantErr: "unable to decode"},
		{name: "bad environment", env: map[string]string{"PYTHONUTF8": "7"}, wantCode: 4, wantErr: "invalid PYTHONUTF8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runWith(t, tt.args, "", tt.env)
			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantErr)
			assert.Contains(t, stderr, "Try `pyinit -h'")
		})
	}
}

func TestRun_DumpsConfiguration_When_ShowconfigGiven(t *testing.T) {
	env := map[string]string{"PYTHONVERBOSE": "2"}

	tests := []struct {
		name        string
		args        []string
		wantVerbose int
		wantUseEnv  bool
	}{
		{name: "environment applied", args: []string{"-X", "showconfig"}, wantVerbose: 2, wantUseEnv: true},
		{name: "environment ignored", args: []string{"-E", "-X", "showconfig"}, wantVerbose: 0, wantUseEnv: false},
		{name: "argument wins", args: []string{"-v", "-X", "showconfig"}, wantVerbose: 1, wantUseEnv: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runWith(t, tt.args, "", env)
			require.Equal(t, 0, code)

			var doc map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
			assert.Equal(t, tt.wantVerbose, doc["verbose"])
			assert.Equal(t, tt.wantUseEnv, doc["use_environment"])
		})
	}
}

func TestRun_EchoesCommand_When_DashCGiven(t *testing.T) {
	code, stdout, _ := runWith(t, []string{"-c", "print('hi')", "arg"}, "", nil)

	assert.Equal(t, 0, code)
	assert.Equal(t, "print('hi')\n", stdout)
}

func TestRun_EchoesModule_When_DashMGiven(t *testing.T) {
	code, stdout, _ := runWith(t, []string{"-m", "http.server", "8000"}, "", nil)

	assert.Equal(t, 0, code)
	assert.Equal(t, "-m http.server 8000\n", stdout)
}

func TestRun_CopiesScript_When_FileGiven(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "app.py")
	long := strings.Repeat("x", 300)
	require.NoError(t, os.WriteFile(script, []byte("#!/usr/bin/env python\nprint(1)\n"+long+"\nlast"), 0o600))

	code, stdout, stderr := runWith(t, []string{"-x", script}, "", nil)

	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "print(1)\n"+long+"\nlast", stdout)
	assert.Empty(t, stderr, "no prompt for scripts")
}

func TestRun_ReturnsTwo_When_ScriptMissing(t *testing.T) {
	code, _, stderr := runWith(t, []string{filepath.Join(t.TempDir(), "missing.py")}, "", nil)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "can't open file")
}

func TestRun_CopiesStdin_When_NotATerminal(t *testing.T) {
	code, stdout, stderr := runWith(t, nil, "a = 1\nb = 2\n", nil)

	assert.Equal(t, 0, code)
	assert.Equal(t, "a = 1\nb = 2\n", stdout)
	assert.Empty(t, stderr)
}

func TestRun_RunsSession_When_InspectRequested(t *testing.T) {
	code, stdout, stderr := runWith(t, []string{"-i", "-c", "x = 1"}, "if x:\n  y\n\n", nil)

	assert.Equal(t, 0, code)
	assert.Equal(t, "x = 1\nif x:\n  y\n", stdout)
	assert.True(t, strings.HasPrefix(stderr, "pyinit dev\nType Ctrl+D to exit.\n"), stderr)
	assert.Contains(t, stderr, ">>> ... ... >>> ")
}

func TestRun_SuppressesBanner_When_Quiet(t *testing.T) {
	code, _, stderr := runWith(t, []string{"-q", "-i", "-c", "pass"}, "", nil)

	assert.Equal(t, 0, code)
	assert.NotContains(t, stderr, "pyinit dev")
	assert.Equal(t, ">>> ", stderr)
}
