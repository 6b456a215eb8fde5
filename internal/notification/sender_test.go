package notification

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_Enabled(t *testing.T) {
	var nilNotifier *Notifier
	assert.False(t, nilNotifier.Enabled())
	assert.False(t, (&Notifier{}).Enabled())
	assert.True(t, (&Notifier{ChatID: "1"}).Enabled())
}

func TestNotifier_Args(t *testing.T) {
	n := &Notifier{Webhook: "http://hook", Channel: "telegram", ChatID: "42"}
	assert.Equal(t, []string{
		"message", "send",
		"--webhook", "http://hook",
		"--channel", "telegram",
		"--chat-id", "42",
		"--message", "hello",
	}, n.Args("hello"))
}

func TestNotifier_SendSkipsWhenChatIDEmpty(t *testing.T) {
	dir := t.TempDir()
	n := &Notifier{Bin: filepath.Join(dir, "must-not-run")}
	n.Send("ignored")
	_, err := os.Stat(filepath.Join(dir, "args.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestNotifier_SendInvokesBinary(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	dir := t.TempDir()
	script := filepath.Join(dir, "fake-openclaw")
	argsFile := filepath.Join(dir, "args.txt")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\" > "+argsFile+"\n"), 0o755))

	n := &Notifier{Webhook: "http://hook", Channel: "telegram", ChatID: "chat-123", Bin: script}
	n.Send("done")

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(n.Args("done"), " "), strings.TrimSpace(string(data)))
}

func TestNotifier_SendSilentOnFailure(t *testing.T) {
	n := &Notifier{ChatID: "1", Bin: filepath.Join(t.TempDir(), "missing")}
	assert.NotPanics(t, func() { n.Send("x") })
}
