// Command hashpass prints the bcrypt hash of a password, ready to be used
// as ADMIN_PASS.
package main

import (
	"fmt"
	"os"
	"storeflight/shared/password"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	// stdout carries only the hash
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Password is required: hashpass <password>")
	}

	hash, err := password.Hash(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	fmt.Println(hash) //nolint:forbidigo
}
