// The boggle-server command runs the HTTP Boggle server, persisting games to
// a SQLite database. All flags can also be set via environment variables.
package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bcspragu/Boggle/cryptorand"
	"github.com/bcspragu/Boggle/dict"
	"github.com/bcspragu/Boggle/sqldb"
	"github.com/bcspragu/Boggle/web"
	"github.com/gorilla/securecookie"
	"github.com/namsral/flag"
	"github.com/rs/zerolog"

	"math/rand"
)

func main() {
	var (
		addr     = flag.String("addr", ":8080", "HTTP service address")
		dbPath   = flag.String("db_path", "boggle.db", "Path to the SQLite DB file")
		dictPath = flag.String("dict_file", "dictionary.txt", "Path to a newline-separated dictionary of words")
	)

	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	d, err := dict.New(*dictPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionary")
	}
	log.Info().Int("words", d.Len()).Str("file", *dictPath).Msg("loaded dictionary")

	r := rand.New(cryptorand.NewSource())
	db, err := sqldb.New(*dbPath, r)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize datastore")
	}

	sc, err := loadKeys()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load cookie keys")
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		db.Close()
		os.Exit(1)
	}()

	log.Info().Str("addr", *addr).Msg("server is running")
	if err := http.ListenAndServe(*addr, web.New(db, d, r, sc, log)); err != nil {
		log.Fatal().Err(err).Msg("ListenAndServe")
	}
}

func loadKeys() (*securecookie.SecureCookie, error) {
	hashKey, err := loadOrGenKey("hashKey")
	if err != nil {
		return nil, err
	}

	blockKey, err := loadOrGenKey("blockKey")
	if err != nil {
		return nil, err
	}

	return securecookie.New(hashKey, blockKey), nil
}

func loadOrGenKey(name string) ([]byte, error) {
	f, err := os.ReadFile(name)
	if err == nil {
		return f, nil
	}

	dat := securecookie.GenerateRandomKey(32)
	if dat == nil {
		return nil, errors.New("failed to generate key")
	}

	if err := os.WriteFile(name, dat, 0600); err != nil {
		return nil, errors.New("error writing key file")
	}
	return dat, nil
}
