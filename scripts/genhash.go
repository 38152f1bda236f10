// genhash prints bcrypt hashes for the passwords given as arguments, for seeding
// users directly into a SQL store.
package main

import (
	"fmt"
	"os"

	"jobflix-backend/config"
	"jobflix-backend/pkg/password"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: go run ./scripts/genhash.go <password>...")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	for _, pass := range os.Args[1:] {
		hash, err := hasher.Hash(pass)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, hash)
	}
}
