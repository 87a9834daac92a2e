package utils

import (
	"testing"
)

func TestDryRunExecutorNeverFails(t *testing.T) {
	exec := &DryRunExecutor{}
	if err := exec.Run("exit 3"); err != nil {
		t.Errorf("dry run executed the command: %v", err)
	}
	if err := exec.Run("echo hello"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cmds := exec.Commands()
	if len(cmds) != 2 || cmds[0] != "exit 3" || cmds[1] != "echo hello" {
		t.Errorf("recorded commands wrong: %v", cmds)
	}
}

func TestShellExecutorPropagatesExitStatus(t *testing.T) {
	exec := &ShellExecutor{}
	if err := exec.Run("exit 0"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := exec.Run("exit 3"); err == nil {
		t.Error("expected error from nonzero exit")
	}
	if len(exec.Commands()) != 2 {
		t.Errorf("recorded commands wrong: %v", exec.Commands())
	}
}
