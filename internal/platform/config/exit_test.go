package config_test

import (
	"flag"
	"os"
	"os/exec"
	"strings"
	"testing"

	playcmd "github.com/louisbranch/sonundrum/internal/cmd/play"
	"github.com/louisbranch/sonundrum/internal/platform/config"
)

// startupCases are the configuration failures the entry points report through
// Exitf before logging exists.
var startupCases = map[string]struct {
	env  map[string]string
	args []string
	want string
}{
	"no other modules": {
		args: []string{"-modules", " , "},
		want: "parse flags: at least one other module is required",
	},
	"bad poll interval": {
		env:  map[string]string{"SONUNDRUM_POLL_INTERVAL": "soon"},
		want: "parse flags: ",
	},
	"unknown flag": {
		args: []string{"-strikes", "3"},
		want: "parse flags: flag provided but not defined: -strikes",
	},
}

// TestExitfReportsStartupErrors runs the play entry point's config path in a
// subprocess, since os.Exit cannot be intercepted in-process.
func TestExitfReportsStartupErrors(t *testing.T) {
	if name := os.Getenv("SONUNDRUM_EXITF_CASE"); name != "" {
		tc := startupCases[name]
		fs := flag.NewFlagSet("sonundrum", flag.ContinueOnError)
		fs.SetOutput(new(strings.Builder))
		if _, err := playcmd.ParseConfig(fs, tc.args); err != nil {
			config.Exitf("parse flags: %v", err)
		}
		return
	}

	for name, tc := range startupCases {
		t.Run(name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestExitfReportsStartupErrors$")
			cmd.Env = append(os.Environ(), "SONUNDRUM_EXITF_CASE="+name)
			for k, v := range tc.env {
				cmd.Env = append(cmd.Env, k+"="+v)
			}

			out, err := cmd.CombinedOutput()
			exitErr, ok := err.(*exec.ExitError)
			if !ok {
				t.Fatalf("expected *exec.ExitError, got %T: %v (output %q)", err, err, out)
			}
			if exitErr.ExitCode() != 1 {
				t.Fatalf("exit code = %d, want 1", exitErr.ExitCode())
			}
			if !strings.Contains(string(out), tc.want) {
				t.Fatalf("stderr = %q, want it to contain %q", out, tc.want)
			}
		})
	}
}
