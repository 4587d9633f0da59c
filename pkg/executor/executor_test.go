package executor

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExecute(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		want       string
		wantErr    bool
		wantStderr string
	}{
		{name: "stdout captured", args: []string{"-c", "echo 12.5"}, want: "12.5\n"},
		{name: "non-zero exit", args: []string{"-c", "exit 3"}, wantErr: true},
		{name: "stderr in error", args: []string{"-c", "echo boom >&2; exit 1"}, wantErr: true, wantStderr: "boom"},
	}

	e := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Execute(context.Background(), "sh", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Execute() = %q, want %q", got, tt.want)
			}
			if tt.wantStderr != "" && !strings.Contains(err.Error(), tt.wantStderr) {
				t.Errorf("Execute() error = %v, want it to contain %q", err, tt.wantStderr)
			}
		})
	}
}

func TestExecuteHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := New().Execute(ctx, "sleep", "5"); err == nil {
		t.Error("Execute() should fail when the context expires")
	}
}
