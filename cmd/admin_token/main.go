package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"quiz-player/internal/config"
	"quiz-player/internal/service"
)

func main() {
	subject := flag.String("subject", "", "who the token is issued to")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to auth.access_token_ttl")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "-subject is required")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create AuthService: %v\n", err)
		os.Exit(1)
	}

	token, err := authService.CreateJWT(context.Background(), *subject, service.RoleAdmin, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sign token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
