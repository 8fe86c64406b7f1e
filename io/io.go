// Package io is the terminal presentation layer for a game of Boggle: board
// rendering, prompts, and score output.
package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bcspragu/Boggle/boggle"
	"github.com/olekukonko/tablewriter"
)

// Terminal talks to the player over a reader/writer pair, usually stdin and
// stdout.
type Terminal struct {
	// In is a reader where the player's input is read from.
	In io.Reader
	// Out is where the prompts and the board should be written out to.
	Out io.Writer

	sc *bufio.Scanner
}

func (t *Terminal) scanner() *bufio.Scanner {
	if t.sc == nil {
		t.sc = bufio.NewScanner(t.In)
	}
	return t.sc
}

// ReadLine prints a prompt and returns one trimmed line of input.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.Out, prompt)
	sc := t.scanner()
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("scanner error: %v", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(sc.Text()), nil
}

// YesNo asks until it gets something starting with a 'y' or an 'n'.
func (t *Terminal) YesNo(prompt string) (bool, error) {
	for {
		line, err := t.ReadLine(prompt + " (y/n): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.Out, "Please answer 'y' or 'n'.")
	}
}

// PrintBoard renders the board as a grid, coloring any highlighted cells.
// Pass nil to highlight nothing.
func (t *Terminal) PrintBoard(b *boggle.Board, highlight map[boggle.Position]bool) {
	table := tablewriter.NewWriter(t.Out)

	for r := 0; r < b.Size; r++ {
		var row []string
		var colors []tablewriter.Colors
		for c := 0; c < b.Size; c++ {
			p := boggle.Position{Row: r, Col: c}
			var col tablewriter.Colors
			if highlight[p] {
				col = append(col, tablewriter.Bold, tablewriter.FgHiGreenColor)
			}
			colors = append(colors, col)
			row = append(row, string(b.At(p)))
		}
		table.Rich(row, colors)
	}

	table.Render()
}

// PrintWords lists a player's found words with their total score.
func (t *Terminal) PrintWords(who string, words []string, score int) {
	if len(words) == 0 {
		fmt.Fprintf(t.Out, "%s words: (none)\n", who)
	} else {
		fmt.Fprintf(t.Out, "%s words: %s\n", who, strings.Join(words, ", "))
	}
	fmt.Fprintf(t.Out, "%s score: %d\n", who, score)
}

// PrintOutcome announces the final result, with the original game's
// signature gloating.
func (t *Terminal) PrintOutcome(w boggle.Winner) {
	switch w {
	case boggle.ComputerWinner:
		fmt.Fprintln(t.Out, "Ha ha ha, I destroyed you. Better luck next time, puny human!")
	case boggle.HumanWinner:
		fmt.Fprintln(t.Out, "WOW, you defeated me! Congratulations!")
	default:
		fmt.Fprintln(t.Out, "It's a draw. You should play again!")
	}
}
