package shared

import (
	"errors"
	"os/exec"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	origRuntime, origStart := getRuntime, startCmd
	t.Cleanup(func() { getRuntime, startCmd = origRuntime, origStart })

	tc := []struct {
		goos     string
		wantPath string
		wantErr  error
	}{
		{goos: "darwin", wantPath: "open"},
		{goos: "linux", wantPath: "xdg-open"},
		{goos: "windows", wantPath: "rundll32"},
		{goos: "plan9", wantErr: ErrUnsupportedPlatform},
	}

	for _, tt := range tc {
		t.Run(tt.goos, func(t *testing.T) {
			var started *exec.Cmd
			getRuntime = func() string { return tt.goos }
			startCmd = func(cmd *exec.Cmd) error {
				started = cmd
				return nil
			}

			err := OpenBrowser("http://127.0.0.1:8000/")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("OpenBrowser() error = %v", err)
			}
			if started == nil || started.Args[0] != tt.wantPath {
				t.Fatalf("expected command %s, got %v", tt.wantPath, started)
			}
			if last := started.Args[len(started.Args)-1]; last != "http://127.0.0.1:8000/" {
				t.Errorf("expected url as last argument, got %s", last)
			}
		})
	}

	t.Run("start failure", func(t *testing.T) {
		getRuntime = func() string { return "linux" }
		startCmd = func(*exec.Cmd) error { return errors.New("no display") }

		if err := OpenBrowser("http://localhost"); err == nil {
			t.Error("expected error when the command fails to start")
		}
	})
}
