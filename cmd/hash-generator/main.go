// Command hash-generator prints the bcrypt hash for a password so it
// can be placed in STUDYDECK_AUTH_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/studydeck/internal/service/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator <password>")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
