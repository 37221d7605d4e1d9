package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/game"
	"github.com/playperu/citydistance/internal/selector"
)

// newTestMachine always draws Beijing, Shanghai and Guangzhou: pair 1 is the
// nearest and pair 2 the farthest.
func newTestMachine() *game.Machine {
	cat := catalog.Default()
	src := selector.SourceFunc(func(n, k int) []int { return []int{0, 1, 2}[:k] })
	return game.New(selector.New(cat, src), distance.New(cat),
		game.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func runPlay(t *testing.T, input string) (*game.Machine, string) {
	t.Helper()
	m := newTestMachine()
	var out bytes.Buffer
	if err := play(m, strings.NewReader(input), &out); err != nil {
		t.Fatalf("play: %v", err)
	}
	return m, out.String()
}

func TestPlayCorrect(t *testing.T) {
	m, out := runPlay(t, "n 1\nf 2\ns\nq\n")

	if s := m.Snapshot(); s.State != game.StateJudged || !s.Result.Success {
		t.Fatalf("state = %v result = %+v", s.State, s.Result)
	}
	for _, want := range []string{"1) Beijing - Shanghai", "[nearest]", "[farthest]", "result: all correct"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayWrongShowsAnswer(t *testing.T) {
	_, out := runPlay(t, "n 3\nf 1\ns\n")

	for _, want := range []string{
		"result: not quite",
		"the nearest pair is Beijing and Shanghai (1067.3 km)",
		"the farthest pair is Beijing and Guangzhou (1888.6 km)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayErrors(t *testing.T) {
	m, out := runPlay(t, "s\nn\nn x\nf 9\njump\n")

	if s := m.Snapshot(); s.State != game.StateReady {
		t.Errorf("state = %v, want ready", s.State)
	}
	for _, want := range []string{
		"! select both the nearest and the farthest pair first",
		"error: give a pair number",
		`error: bad pair number "x"`,
		"error: pair is not part of this game",
		`error: unknown command "jump"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayReset(t *testing.T) {
	m, out := runPlay(t, "n 1\nf 2\ns\nr\n")

	s := m.Snapshot()
	if s.State != game.StateReady || s.Result != nil || s.NearestGuess != game.NoGuess {
		t.Errorf("after reset: %+v", s)
	}
	if !strings.Contains(out, "- game reset") {
		t.Errorf("output missing reset log:\n%s", out)
	}
}

func TestRootCommands(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"distance", "Beijing", "Shanghai"}, "Beijing to Shanghai: 1067.3 km"},
		{[]string{"extremes"}, "Kunming and Harbin (3139.7 km)"},
		{[]string{"cities", "--precision", "5"}, "wx4g0"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0], func(t *testing.T) {
			var out bytes.Buffer
			cmd := newCmd(&Config{}, strings.NewReader(""), &out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("execute: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output %q missing %q", out.String(), tt.want)
			}
		})
	}
}

func TestRootRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"distance", "Beijing", "Atlantis"},
		{"distance", "Beijing"},
		{"play", "--count", "1"},
	} {
		cmd := newCmd(&Config{}, strings.NewReader(""), io.Discard)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err == nil {
			t.Errorf("%v: no error", args)
		}
	}
}
