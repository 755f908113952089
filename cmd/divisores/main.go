package main

import (
	"errors"
	"log"
	"os"

	"divisors-gateway/console"
)

func main() {
	err := console.Run(os.Args[1:], os.Stdin, os.Stdout)
	if errors.Is(err, console.ErrInvalidEntry) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}
