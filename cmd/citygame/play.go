package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/game"
	"github.com/playperu/citydistance/internal/geoquiz"
)

const playHelp = `commands:
  n N      guess pair N as the nearest
  f N      guess pair N as the farthest
  s        submit both guesses
  r        new cities
  q        quit`

// play drives m from line commands on in until q or end of input.
func play(m *game.Machine, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	s := m.Start()
	shown := printLog(out, s, 0)
	printBoard(out, s)

	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "q", "quit":
			return nil
		case "h", "help", "?":
			fmt.Fprintln(out, playHelp)
			continue
		case "r", "reset":
			s = m.Reset()
			shown = 0
		case "n", "nearest", "f", "farthest":
			var i int
			if i, err = pairArg(fields); err == nil {
				if fields[0][0] == 'n' {
					s, err = m.SelectNearest(i)
				} else {
					s, err = m.SelectFarthest(i)
				}
			}
		case "s", "submit":
			s, err = m.Submit()
		default:
			err = fmt.Errorf("unknown command %q, try help", fields[0])
		}

		shown = printLog(out, s, shown)
		if err != nil {
			if !errors.Is(err, geoquiz.ErrGuessIncomplete) {
				fmt.Fprintln(out, "error:", err)
			}
			continue
		}
		printBoard(out, s)
	}
}

func pairArg(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, errors.New("give a pair number")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("bad pair number %q", fields[1])
	}
	return n - 1, nil
}

// printLog writes the entries past shown and returns the new count.
func printLog(out io.Writer, s game.Snapshot, shown int) int {
	for _, e := range s.Log[min(shown, len(s.Log)):] {
		if e.Level == game.LevelError {
			fmt.Fprintln(out, "!", e.Message)
			continue
		}
		fmt.Fprintln(out, "-", e.Message)
	}
	return len(s.Log)
}

func printBoard(out io.Writer, s game.Snapshot) {
	if s.State == game.StateJudged {
		fmt.Fprintln(out, "r for a new round, q to quit")
		return
	}
	if len(s.Pairs) == 0 {
		fmt.Fprintln(out, "no pairs to guess, press r to try again")
		return
	}

	fmt.Fprintln(out, "pairs:")
	for i, p := range s.Pairs {
		mark := ""
		if i == s.NearestGuess {
			mark += " [nearest]"
		}
		if i == s.FarthestGuess {
			mark += " [farthest]"
		}
		fmt.Fprintf(out, "  %d) %s - %s%s\n", i+1, p.A, p.B, mark)
	}
}

func formatPair(p geoquiz.CityPair) string {
	return fmt.Sprintf("%s and %s (%s)", p.A, p.B, distance.Format(p.Distance))
}
