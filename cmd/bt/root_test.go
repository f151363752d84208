package main

import "testing"

func TestCountVerbosity(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{args: nil, want: 0},
		{args: []string{"status"}, want: 0},
		{args: []string{"-v", "status"}, want: 1},
		{args: []string{"-vv", "build"}, want: 2},
		{args: []string{"-v", "-v", "-v"}, want: 3},
		{args: []string{"--verbose", "fetch"}, want: 1},
		{args: []string{"build", "--", "-v"}, want: 0},
		{args: []string{"--value"}, want: 0},
	}

	for _, tt := range tests {
		if got := countVerbosity(tt.args); got != tt.want {
			t.Errorf("countVerbosity(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

// The pre-parse count feeds the logger through a local; the flag-bound
// variable is cobra's alone, so parsing must not compound the two.
func TestVerbosityNotDoubleCounted(t *testing.T) {
	verbosity = 0
	t.Cleanup(func() { verbosity = 0 })

	args := []string{"-vv", "status"}
	level := countVerbosity(args)
	if err := rootCmd.PersistentFlags().Parse(args); err != nil {
		t.Fatal(err)
	}
	if level != 2 || verbosity != 2 {
		t.Errorf("pre-parse level = %d, parsed verbosity = %d, want 2 and 2", level, verbosity)
	}
}
