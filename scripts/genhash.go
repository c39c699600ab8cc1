package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"job-portal-backend/pkg/auth"

	"golang.org/x/crypto/bcrypt"
)

// Prints bcrypt hashes for seed users and, with -employer, a signed
// employer token.
//
//	go run ./scripts -passwords 'Str0ng!one,Str0ng!two' -employer 3
func main() {
	passwords := flag.String("passwords", "", "comma separated plaintext passwords")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	employerID := flag.Int64("employer", 0, "employer id to issue a token for")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	for _, pass := range strings.Split(*passwords, ",") {
		if pass == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pass), *cost)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", pass, string(hash))
	}

	if *employerID > 0 {
		tokens := auth.NewTokenManager(os.Getenv("JWT_SECRET"))
		token, err := tokens.IssueEmployerToken(*employerID, *ttl)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Employer %d token:\n%s\n", *employerID, token)
	}
}
