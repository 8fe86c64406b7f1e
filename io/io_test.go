package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bcspragu/Boggle/boggle"
)

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{In: strings.NewReader("  hello \n"), Out: &out}

	line, err := term.ReadLine("Word: ")
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if line != "hello" {
		t.Errorf("ReadLine = %q, want %q", line, "hello")
	}
	if !strings.Contains(out.String(), "Word: ") {
		t.Errorf("prompt wasn't written, output was %q", out.String())
	}
}

func TestYesNo(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{In: strings.NewReader("maybe\nY\n"), Out: &out}

	// The first answer isn't a yes or a no, so it gets asked again.
	yes, err := term.YesNo("Random board?")
	if err != nil {
		t.Fatalf("YesNo: %v", err)
	}
	if !yes {
		t.Error("YesNo = false, want true")
	}
	if !strings.Contains(out.String(), "Please answer") {
		t.Error("bad input wasn't re-prompted")
	}

	term = &Terminal{In: strings.NewReader("no\n"), Out: &out}
	yes, err = term.YesNo("Random board?")
	if err != nil {
		t.Fatalf("YesNo: %v", err)
	}
	if yes {
		t.Error("YesNo = true, want false")
	}
}

func TestPrintBoard(t *testing.T) {
	b, err := boggle.NewBoard("ABCD", 2)
	if err != nil {
		t.Fatalf("failed to build board: %v", err)
	}

	var plain bytes.Buffer
	(&Terminal{Out: &plain}).PrintBoard(b, nil)
	for _, letter := range []string{"A", "B", "C", "D"} {
		if !strings.Contains(plain.String(), letter) {
			t.Errorf("board output is missing letter %s", letter)
		}
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("unhighlighted board has color codes")
	}

	var lit bytes.Buffer
	(&Terminal{Out: &lit}).PrintBoard(b, map[boggle.Position]bool{
		{Row: 0, Col: 0}: true,
		{Row: 1, Col: 1}: true,
	})
	if !strings.Contains(lit.String(), "\x1b[") {
		t.Error("highlighted board has no color codes")
	}
}

func TestPrintWords(t *testing.T) {
	var out bytes.Buffer
	term := &Terminal{Out: &out}

	term.PrintWords("Your", nil, 0)
	if !strings.Contains(out.String(), "(none)") {
		t.Errorf("empty word list wasn't announced, output was %q", out.String())
	}

	out.Reset()
	term.PrintWords("My", []string{"ABDC", "WORD"}, 2)
	got := out.String()
	if !strings.Contains(got, "ABDC, WORD") {
		t.Errorf("word list missing from %q", got)
	}
	if !strings.Contains(got, "My score: 2") {
		t.Errorf("score missing from %q", got)
	}
}

func TestPrintOutcome(t *testing.T) {
	tests := []struct {
		winner boggle.Winner
		want   string
	}{
		{boggle.ComputerWinner, "puny human"},
		{boggle.HumanWinner, "Congratulations"},
		{boggle.DrawWinner, "draw"},
	}

	for _, test := range tests {
		var out bytes.Buffer
		(&Terminal{Out: &out}).PrintOutcome(test.winner)
		if !strings.Contains(out.String(), test.want) {
			t.Errorf("PrintOutcome(%q) = %q, want it to mention %q", test.winner, out.String(), test.want)
		}
	}
}
