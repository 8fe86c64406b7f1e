// Package dict holds the word list that Boggle games are played against.
// Words are kept in a trie so that both exact lookups and "does any word
// start with this?" questions are cheap, the latter is what lets the
// exhaustive board search prune dead branches early.
package dict

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Dictionary is a read-only set of uppercase words with prefix queries.
type Dictionary struct {
	root *node
	size int
}

type node struct {
	children [26]*node
	terminal bool
}

// New reads a newline-separated word file into a Dictionary. Words are
// normalized to uppercase, anything containing a non-letter is skipped.
func New(file string) (*Dictionary, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file %q: %v", file, err)
	}
	defer f.Close()

	d := &Dictionary{root: &node{}}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		d.add(strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %v", err)
	}

	return d, nil
}

// NewFromWords builds a Dictionary from an in-memory word list. It's mainly
// for tests and embedded lists.
func NewFromWords(words []string) *Dictionary {
	d := &Dictionary{root: &node{}}
	for _, w := range words {
		d.add(w)
	}
	return d
}

func (d *Dictionary) add(word string) {
	word = strings.ToUpper(word)
	if word == "" {
		return
	}

	n := d.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'A' || c > 'Z' {
			return
		}
		child := n.children[c-'A']
		if child == nil {
			child = &node{}
			n.children[c-'A'] = child
		}
		n = child
	}
	if !n.terminal {
		n.terminal = true
		d.size++
	}
}

// walk descends the trie along word, returning nil if the path falls off.
func (d *Dictionary) walk(word string) *node {
	n := d.root
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'A' || c > 'Z' {
			return nil
		}
		if n = n.children[c-'A']; n == nil {
			return nil
		}
	}
	return n
}

// Contains returns whether word is in the dictionary. Words are stored
// uppercase, callers normalize before asking.
func (d *Dictionary) Contains(word string) bool {
	n := d.walk(word)
	return n != nil && n.terminal
}

// ContainsPrefix returns whether any word in the dictionary starts with
// prefix. Every word counts as a prefix of itself.
func (d *Dictionary) ContainsPrefix(prefix string) bool {
	return d.walk(prefix) != nil
}

// Len returns the number of distinct words loaded.
func (d *Dictionary) Len() int {
	return d.size
}
