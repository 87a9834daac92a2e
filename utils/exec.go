package utils

import (
	"fmt"
	"os"
	"os/exec"
)

// Executor is the single choke point for external commands. Every command the
// pipeline issues goes through one of these, so a dry run prints the exact
// sequence a real run would execute.
type Executor interface {
	Run(cmdStr string) error
	Commands() []string
}

// ShellExecutor prints each command and then runs it through bash with
// inherited stdio, propagating the exit status.
type ShellExecutor struct {
	history []string
}

func (s *ShellExecutor) Run(cmdStr string) error {
	fmt.Println(cmdStr)
	s.history = append(s.history, cmdStr)
	cmd := exec.Command("bash", "-c", cmdStr)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err != nil {
		return err
	}
	return nil
}

func (s *ShellExecutor) Commands() []string {
	return s.history
}

// DryRunExecutor prints each command with a marker, records it and never
// executes anything. It always reports success so the remaining stages still
// get printed.
type DryRunExecutor struct {
	history []string
}

func (d *DryRunExecutor) Run(cmdStr string) error {
	fmt.Printf("[DRY RUN] %s\n", cmdStr)
	d.history = append(d.history, cmdStr)
	return nil
}

func (d *DryRunExecutor) Commands() []string {
	return d.history
}
