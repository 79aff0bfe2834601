// Package azure wraps the az command-line tool: it builds argument
// vectors, runs az with a bounded timeout, decodes JSON output into
// typed values, and renders human-readable reports. All network and
// auth behavior belongs to az itself.
package azure

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ResultKind tags the outcome of one az invocation.
type ResultKind int

const (
	// KindFailed is a spawn failure, non-zero exit, or timeout.
	KindFailed ResultKind = iota

	// KindRaw is a zero exit whose output is plain text: either JSON
	// output was not requested, or it was requested but did not decode.
	KindRaw

	// KindStructured is a zero exit with decoded JSON output.
	KindStructured
)

// Result is the tagged outcome of one az invocation. Exactly one of the
// three kinds applies; callers branch on Kind rather than guessing the
// shape of the output.
type Result struct {
	Kind ResultKind

	// Data holds the decoded JSON when Kind is KindStructured.
	Data json.RawMessage

	// Raw holds the captured stdout for KindRaw and KindStructured.
	Raw string

	// Err is the failure message when Kind is KindFailed.
	Err string

	// DecodeErr is set when structured output was requested but the
	// output was not valid JSON (Kind is then KindRaw). The raw text is
	// still available; the tag makes the fallback visible.
	DecodeErr error
}

// OK reports whether the invocation succeeded, in either output mode.
func (r Result) OK() bool {
	return r.Kind != KindFailed
}

// Decode unmarshals structured output into v.
func (r Result) Decode(v interface{}) error {
	if r.Kind != KindStructured {
		return fmt.Errorf("no structured data to decode (kind %d)", r.Kind)
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode az output: %w", err)
	}
	return nil
}

// Runner invokes the az executable. The zero value is not usable; use
// NewRunner.
type Runner struct {
	// Binary is the az executable name or path.
	Binary string

	// Timeout bounds the wall-clock time of each invocation.
	Timeout time.Duration
}

// DefaultTimeout bounds each az invocation unless overridden.
const DefaultTimeout = 120 * time.Second

// NewRunner returns a runner for the standard az binary with the default
// timeout.
func NewRunner() *Runner {
	return &Runner{Binary: "az", Timeout: DefaultTimeout}
}

// Run executes az with the given arguments. When structured is true,
// "-o json" is appended and a zero-exit output is decoded; a decode
// failure downgrades the result to KindRaw with DecodeErr set instead of
// masking the problem. Non-zero exits carry the captured stderr,
// timeouts a timeout-specific message, and spawn failures the spawn
// error. Run never returns a partial result for a timed-out command.
func (r *Runner) Run(ctx context.Context, args []string, structured bool) Result {
	argv := make([]string, 0, len(args)+2)
	argv = append(argv, args...)
	if structured {
		argv = append(argv, "-o", "json")
	}

	execCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(execCtx, r.Binary, argv...)
	stdout, err := cmd.Output()
	if err != nil {
		if execCtx.Err() == context.DeadlineExceeded {
			return Result{Kind: KindFailed, Err: fmt.Sprintf("command timed out after %s", r.Timeout)}
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			msg := strings.TrimSpace(string(exitErr.Stderr))
			if msg == "" {
				msg = exitErr.Error()
			}
			return Result{Kind: KindFailed, Err: msg}
		}
		// Command failed to start.
		return Result{Kind: KindFailed, Err: err.Error()}
	}

	out := string(stdout)
	if structured && strings.TrimSpace(out) != "" {
		var data json.RawMessage
		if decodeErr := json.Unmarshal([]byte(out), &data); decodeErr != nil {
			return Result{Kind: KindRaw, Raw: out, DecodeErr: decodeErr}
		}
		return Result{Kind: KindStructured, Data: data, Raw: out}
	}

	return Result{Kind: KindRaw, Raw: out}
}
