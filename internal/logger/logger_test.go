package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/spf13/cobra"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	h := log.NewHelper(l)
	h.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	h.Warn("loud")
	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "msg=loud") || !strings.Contains(out, "service=salute") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestNew_CaseInsensitiveLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, " DEBUG ")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.NewHelper(l).Debugf("n=%d", 3)
	if !strings.Contains(buf.String(), "msg=n=3") {
		t.Fatalf("unexpected log line: %q", buf.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil || err.Error() != "invalid log level: loud" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNop(t *testing.T) {
	if err := Nop().Log(log.LevelError, "msg", "dropped"); err != nil {
		t.Fatalf("nop log: %v", err)
	}
}

func TestForCommand_InheritsLevel(t *testing.T) {
	root := &cobra.Command{Use: "root"}
	root.PersistentFlags().String(LevelFlag, DefaultLevel, "")
	var buf bytes.Buffer
	child := &cobra.Command{Use: "child", RunE: func(cmd *cobra.Command, _ []string) error {
		l, err := ForCommand(cmd)
		if err != nil {
			return err
		}
		log.NewHelper(l).Debug("visible")
		return nil
	}}
	child.SetErr(&buf)
	root.AddCommand(child)
	root.SetArgs([]string{"child", "--log-level", "debug"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}

func TestForCommand_DefaultsWithoutFlag(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "bare"}
	cmd.SetErr(&buf)
	l, err := ForCommand(cmd)
	if err != nil {
		t.Fatalf("for command: %v", err)
	}
	log.NewHelper(l).Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
}
