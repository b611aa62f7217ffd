package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitCompat_LeavesTriStatesUnset(t *testing.T) {
	t.Parallel()

	cfg := InitCompat()

	assert.Equal(t, Unset, cfg.Isolated)
	assert.Equal(t, Unset, cfg.UseEnvironment)
	assert.Equal(t, Unset, cfg.DevMode)
	assert.Equal(t, CheckHashDefault, cfg.CheckHashPycsMode)
	assert.Equal(t, -1, cfg.IntMaxStrDigits)
	assert.NotNil(t, cfg.Argv)
	assert.NotNil(t, cfg.XOptions)
	assert.False(t, cfg.Frozen())
}

func TestInitCompat_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a := InitCompat()
	a.XOptions = append(a.XOptions, "dev")
	a.Verbose = 9

	b := InitCompat()
	assert.Empty(t, b.XOptions)
	assert.Zero(t, b.Verbose)
}

func TestClone_DoesNotAliasSlices(t *testing.T) {
	t.Parallel()

	orig := RuntimeConfig{Argv: []string{"a"}, XOptions: []string{"dev"}}
	c := orig.Clone()
	c.Argv[0] = "b"
	c.XOptions[0] = "utf8"

	assert.Equal(t, "a", orig.Argv[0])
	assert.Equal(t, "dev", orig.XOptions[0])
}

func TestXOption_LastOccurrenceWins(t *testing.T) {
	t.Parallel()

	cfg := RuntimeConfig{XOptions: []string{"utf8=0", "dev", "utf8=1"}}

	v, ok := cfg.XOption("utf8")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = cfg.XOption("dev")
	assert.True(t, ok)
	assert.Empty(t, v)

	_, ok = cfg.XOption("frozen_modules")
	assert.False(t, ok)
}

func TestInteractive_DependsOnTargetAndTTY(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  RuntimeConfig
		tty  bool
		want bool
	}{
		{name: "bare tty", tty: true, want: true},
		{name: "bare pipe", tty: false, want: false},
		{name: "command on tty", cfg: RuntimeConfig{RunCommand: "x\n"}, tty: true, want: false},
		{name: "script with inspect", cfg: RuntimeConfig{RunFilename: "a.py", Inspect: 1}, tty: false, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.Interactive(tt.tty))
		})
	}
}

func TestYAML_RendersResolvedConfig(t *testing.T) {
	t.Parallel()

	cfg, st := Finalize(InitCompat())
	require.True(t, st.IsOK())

	out, err := cfg.YAML()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, true, doc["use_environment"])
	assert.Equal(t, false, doc["isolated"])
	assert.Equal(t, 4300, doc["int_max_str_digits"])
	assert.NotContains(t, doc, "run_command")
}

func TestTriState_RoundTripsThroughYAML(t *testing.T) {
	t.Parallel()

	var got struct {
		A TriState `yaml:"a"`
		B TriState `yaml:"b"`
		C TriState `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: true\nb: false\nc: unset\n"), &got))
	assert.Equal(t, True, got.A)
	assert.Equal(t, False, got.B)
	assert.Equal(t, Unset, got.C)

	err := yaml.Unmarshal([]byte("a: maybe\n"), &got)
	assert.Error(t, err)
}
