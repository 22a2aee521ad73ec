package reversi

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Statistics is the history of the standing of each agent. Entry i of each series is the standing after game i.
type Statistics struct {
	Creation []string
	Wins     map[string][]float32
	Losses   map[string][]float32
	Draws    map[string][]float32
}

func makeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 2),
		Wins:     make(map[string][]float32),
		Losses:   make(map[string][]float32),
		Draws:    make(map[string][]float32),
	}
}

func (s *Statistics) update(A *Agent) {
	A.Lock()
	defer A.Unlock()
	aname := A.name

	if _, ok := s.Wins[aname]; !ok {
		s.Creation = append(s.Creation, aname)
	}

	s.Wins[aname] = append(s.Wins[aname], A.Wins)
	s.Losses[aname] = append(s.Losses[aname], A.Loss)
	s.Draws[aname] = append(s.Draws[aname], A.Draw)
}

// WinRates returns the win rate of the agent after each game.
func (s *Statistics) WinRates(agent string) []float32 {
	wins := s.Wins[agent]
	total := make([]float32, len(wins))
	copy(total, wins)
	vecf32.Add(total, s.Losses[agent])
	vecf32.Add(total, s.Draws[agent])

	retVal := make([]float32, len(wins))
	copy(retVal, wins)
	vecf32.Div(retVal, total)
	return retVal
}

// Write writes the win rates as CSV, one column per agent and one row per game.
func (s *Statistics) Write(out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(s.Creation); err != nil {
		return errors.WithStack(err)
	}
	rates := make([][]float32, len(s.Creation))
	var rows int
	for i, agent := range s.Creation {
		rates[i] = s.WinRates(agent)
		rows = max(rows, len(rates[i]))
	}
	records := make([][]string, rows)
	for j := range records {
		record := make([]string, len(s.Creation))
		for i := range s.Creation {
			if j < len(rates[i]) {
				record[i] = strconv.FormatFloat(float64(rates[i][j]), 'f', 3, 32)
			}
		}
		records[j] = record
	}
	if err := w.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// Dump writes the win rates into filename.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return s.Write(f)
}
