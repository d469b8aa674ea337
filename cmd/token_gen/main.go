package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"openpilotlog/logbook/internal/auth"
	"openpilotlog/logbook/internal/constants"
)

func main() {
	subject := flag.String("sub", "pilot", "token subject")
	role := flag.String("role", string(constants.RolePilot), "token role (pilot or admin)")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("API_SECRET")
	if secret == "" {
		log.Fatal("API_SECRET is not set")
	}

	token, err := auth.NewTokenService([]byte(secret)).Issue(*subject, constants.Role(*role), *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
