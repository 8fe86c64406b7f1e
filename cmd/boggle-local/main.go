// The boggle-local command is the playable console version of Boggle: you
// type the words you can find on the board, then the computer exhaustively
// finds everything you missed.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/bcspragu/Boggle/boardgen"
	"github.com/bcspragu/Boggle/boggle"
	"github.com/bcspragu/Boggle/cryptorand"
	"github.com/bcspragu/Boggle/dict"
	"github.com/bcspragu/Boggle/game"
	boggleio "github.com/bcspragu/Boggle/io"
	"github.com/bcspragu/Boggle/search"
)

func pathHighlight(path []boggle.Position) map[boggle.Position]bool {
	h := make(map[boggle.Position]bool, len(path))
	for _, p := range path {
		h[p] = true
	}
	return h
}

func main() {
	var (
		dictFile = flag.String("dict_file", "dictionary.txt", "A newline-separated dictionary of words.")
		size     = flag.Int("board_size", boggle.DefaultBoardSize, "Width and height of the board.")
		minLen   = flag.Int("min_word_length", boggle.DefaultMinWordLength, "Shortest playable word.")
		seed     = flag.Int64("seed", 0, "Seed for board generation, 0 uses a random one.")
	)
	flag.Parse()

	d, err := dict.New(*dictFile)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	if d.Len() == 0 {
		log.Fatalf("Dictionary %q contains no words", *dictFile)
	}

	var r *rand.Rand
	if *seed != 0 {
		r = rand.New(rand.NewSource(*seed))
	} else {
		r = rand.New(cryptorand.NewSource())
	}

	t := &boggleio.Terminal{In: os.Stdin, Out: os.Stdout}
	intro(t)

	for {
		b, err := pickBoard(t, *size, r)
		if err != nil {
			return
		}

		if err := playRound(t, b, d, *minLen); err != nil {
			return
		}

		again, err := t.YesNo("Play again?")
		if err != nil || !again {
			break
		}
	}
	fmt.Fprintln(t.Out, "Have a nice day.")
}

func intro(t *boggleio.Terminal) {
	fmt.Fprintln(t.Out, "Welcome to Boggle!")
	fmt.Fprintln(t.Out, "This game is a search for words on a 2-D board of letter cubes.")
	fmt.Fprintln(t.Out, "The good news is that you might improve your vocabulary a bit.")
	fmt.Fprintln(t.Out, "The bad news is that you're probably going to lose miserably to")
	fmt.Fprintln(t.Out, "this little dictionary-toting hunk of silicon.")
	fmt.Fprintln(t.Out)
}

// pickBoard either rolls a random board or accepts a manual layout from the
// player, retrying until the letters are valid.
func pickBoard(t *boggleio.Terminal, size int, r *rand.Rand) (*boggle.Board, error) {
	random, err := t.YesNo("Generate a random board?")
	if err != nil {
		return nil, err
	}
	if random {
		return boardgen.New(size, r), nil
	}

	for {
		line, err := t.ReadLine(fmt.Sprintf("Type the %d letters on the board: ", size*size))
		if err != nil {
			return nil, err
		}
		b, err := boardgen.FromString(line, size)
		if err != nil {
			fmt.Fprintln(t.Out, "Invalid board string. Try again.")
			continue
		}
		return b, nil
	}
}

func playRound(t *boggleio.Terminal, b *boggle.Board, d *dict.Dictionary, minLen int) error {
	g, err := game.New(b, minLen, &game.Config{Dict: d})
	if err != nil {
		log.Fatalf("Failed to instantiate game: %v", err)
	}

	fmt.Fprintln(t.Out, "It's your turn!")
	for {
		t.PrintBoard(b, nil)
		t.PrintWords("Your", g.HumanWords(), g.State().HumanScore)

		word, err := t.ReadLine("Type a word (or Enter to stop): ")
		if err != nil {
			return err
		}
		if word == "" {
			break
		}

		res, err := g.PlayWord(word)
		if err != nil {
			fmt.Fprintln(t.Out, err)
			continue
		}
		fmt.Fprintf(t.Out, "You found a new word! %q (+%d)\n", res.Word, res.Points)
		if path, ok := search.Trace(b, res.Word); ok {
			t.PrintBoard(b, pathHighlight(path))
		}
		fmt.Fprintln(t.Out)
	}

	fmt.Fprintln(t.Out, "It's my turn!")
	out, err := g.FinishTurn()
	if err != nil {
		return err
	}

	t.PrintWords("My", out.ComputerWords, out.ComputerScore)
	t.PrintOutcome(out.Winner)
	fmt.Fprintln(t.Out)
	return nil
}
