package shell

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		cmdEnv   map[string]string
		expected []string
	}{
		{
			name:     "allowed system vars",
			sysEnv:   []string{"USER=ci", "PATH=/bin", "JAVA_HOME=/opt/jdk"},
			expected: []string{"USER=ci", "PATH=/bin", "JAVA_HOME=/opt/jdk"},
		},
		{
			name:     "filters secrets",
			sysEnv:   []string{"USER=ci", "RUNDECK_PASSWORD=hunter2", "SSH_AUTH_SOCK=/tmp/ssh"},
			expected: []string{"USER=ci"},
		},
		{
			name:     "command overrides",
			sysEnv:   []string{"USER=ci", "PATH=/bin"},
			cmdEnv:   map[string]string{"PATH": "/custom/bin", "BUILD_TAG": "1.0"},
			expected: []string{"USER=ci", "PATH=/custom/bin", "BUILD_TAG=1.0"},
		},
		{
			name:     "malformed entries ignored",
			sysEnv:   []string{"USER", "HOME=/home/ci"},
			expected: []string{"HOME=/home/ci"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.cmdEnv)
			sort.Strings(got)
			want := append([]string(nil), tt.expected...)
			sort.Strings(want)
			assert.Equal(t, want, got)
		})
	}
}

func TestLookPath(t *testing.T) {
	dir := t.TempDir()
	tool := filepath.Join(dir, "mvn")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes"), []byte("x"), 0o644))

	got, err := lookPath("mvn", []string{"PATH=/nonexistent" + string(os.PathListSeparator) + dir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = lookPath("notes", []string{"PATH=" + dir})
	require.Error(t, err)

	_, err = lookPath("mvn", nil)
	require.Error(t, err)
}

type recordingLogger struct{ lines []string }

func (r *recordingLogger) Info(msg string) { r.lines = append(r.lines, msg) }
func (r *recordingLogger) Warn(string)     {}
func (r *recordingLogger) Error(error)     {}

func TestLogWriter(t *testing.T) {
	log := &recordingLogger{}
	w := &logWriter{logger: log}

	_, _ = w.Write([]byte("par"))
	_, _ = w.Write([]byte("t1\r\nline2\n"))
	_, _ = w.Write([]byte("tail"))
	assert.Equal(t, []string{"part1", "line2"}, log.lines)

	require.NoError(t, w.Close())
	assert.Equal(t, []string{"part1", "line2", "tail"}, log.lines)
}
