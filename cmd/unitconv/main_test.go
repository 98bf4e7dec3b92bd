package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureStdout runs f with stdout redirected to a buffer.
func captureStdout(t *testing.T, f func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	runErr := f()
	w.Close()
	os.Stdout = old
	return <-done, runErr
}

func TestConvertCmd(t *testing.T) {
	cmd := &ConvertCmd{Value: "5", From: "km", To: "m"}
	out, err := captureStdout(t, cmd.Run)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "5000 m") {
		t.Errorf("output = %q, want it to contain %q", out, "5000 m")
	}
}

func TestConvertCmdTemperature(t *testing.T) {
	cmd := &ConvertCmd{Value: "0", From: "°C", To: "°F"}
	out, err := captureStdout(t, cmd.Run)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "32 °F") {
		t.Errorf("output = %q, want it to contain %q", out, "32 °F")
	}
}

func TestConvertCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  ConvertCmd
	}{
		{name: "bad value", cmd: ConvertCmd{Value: "five", From: "km", To: "m"}},
		{name: "unknown source", cmd: ConvertCmd{Value: "1", From: "furlong", To: "m"}},
		{name: "unknown destination", cmd: ConvertCmd{Value: "1", From: "m", To: "furlong"}},
		{name: "dimension mismatch", cmd: ConvertCmd{Value: "1", From: "m", To: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := captureStdout(t, tt.cmd.Run); err == nil {
				t.Error("Run should fail")
			}
		})
	}
}

func TestFactorCmd(t *testing.T) {
	cmd := &FactorCmd{From: "mi", To: "km"}
	out, err := captureStdout(t, cmd.Run)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "exact") {
		t.Errorf("output = %q, want an exact factor", out)
	}
}

func TestUnitsListCmd(t *testing.T) {
	cmd := &UnitsListCmd{}
	out, err := captureStdout(t, cmd.Run)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, want := range []string{"m", "kelvin", "newton"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}

	filtered := &UnitsListCmd{Dimension: "Length"}
	out, err = captureStdout(t, filtered.Run)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "meter") {
		t.Error("filtered output should include meter")
	}
	if strings.Contains(out, "second") {
		t.Error("filtered output should not include second")
	}
}

func TestDimsCmd(t *testing.T) {
	cmd := &DimsCmd{}
	out, err := captureStdout(t, cmd.Run)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "Length") || !strings.Contains(out, "Velocity") {
		t.Errorf("output = %q, want base and derived dimensions", out)
	}
}

func TestDescribeCmd(t *testing.T) {
	cmd := &DescribeCmd{Symbol: "kN"}
	out, err := captureStdout(t, cmd.Run)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out, "1000") || !strings.Contains(out, "exact") {
		t.Errorf("output = %q, want exact factor 1000", out)
	}

	bad := &DescribeCmd{Symbol: "furlong"}
	if _, err := captureStdout(t, bad.Run); err == nil {
		t.Error("describing an unknown symbol should fail")
	}
}
