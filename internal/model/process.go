package model

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ProcessRequest is the request to run a process inside a sandbox and wait for it.
type ProcessRequest struct {
	Executable       string   `json:"executable"`
	Args             []string `json:"args,omitempty"`
	WorkingDirectory string   `json:"workingDirectory,omitempty"`
	StdinBase64      string   `json:"stdinBase64,omitempty"`
}

// Validate checks the request is valid.
func (r ProcessRequest) Validate() error {
	if r.Executable == "" {
		return fmt.Errorf("executable is required: %w", ErrNotValid)
	}
	return nil
}

// SetStdin sets the process standard input.
func (r *ProcessRequest) SetStdin(data []byte) {
	r.StdinBase64 = base64.StdEncoding.EncodeToString(data)
}

// ProcessResult is the result of a finished process.
type ProcessResult struct {
	ExitCode     int    `json:"exitCode"`
	StdoutBase64 string `json:"stdoutBase64"`
	StderrBase64 string `json:"stderrBase64"`
}

// Stdout returns the decoded standard output, invalid UTF-8 is replaced.
func (r ProcessResult) Stdout() string { return decodeBase64Text(r.StdoutBase64) }

// Stderr returns the decoded standard error, invalid UTF-8 is replaced.
func (r ProcessResult) Stderr() string { return decodeBase64Text(r.StderrBase64) }

func decodeBase64Text(s string) string {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(string(data), "�")
}

// ShellSessionRequest is the request to create a shell session.
type ShellSessionRequest struct {
	Command          string `json:"command"`
	UseTTY           bool   `json:"useTty,omitempty"`
	TimeoutSeconds   int    `json:"timeoutSeconds,omitempty"`
	WorkingDirectory string `json:"workingDirectory,omitempty"`
	TTYRows          int    `json:"ttyRows,omitempty"`
	TTYCols          int    `json:"ttyCols,omitempty"`
}

// Validate checks the request is valid.
func (r ShellSessionRequest) Validate() error {
	if r.Command == "" {
		return fmt.Errorf("command is required: %w", ErrNotValid)
	}
	if r.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout must not be negative: %w", ErrNotValid)
	}
	return nil
}

// ShellSession is a created shell session.
type ShellSession struct {
	SessionID string `json:"sessionId"`
}

// ShellWriteRequest writes data to the standard input of a shell session.
type ShellWriteRequest struct {
	Data string `json:"data"`
}

// ShellOutput is the buffered output of a shell session since the last read.
type ShellOutput struct {
	StdoutBase64 string `json:"stdoutBase64"`
	StderrBase64 string `json:"stderrBase64"`
	ExitCode     *int   `json:"exitCode,omitempty"`
}

// Stdout returns the decoded standard output, invalid UTF-8 is replaced.
func (o ShellOutput) Stdout() string { return decodeBase64Text(o.StdoutBase64) }

// Stderr returns the decoded standard error, invalid UTF-8 is replaced.
func (o ShellOutput) Stderr() string { return decodeBase64Text(o.StderrBase64) }

// Finished returns true when the shell process exited.
func (o ShellOutput) Finished() bool { return o.ExitCode != nil }
