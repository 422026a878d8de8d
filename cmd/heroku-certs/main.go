package main

import (
	"fmt"
	"os"

	"github.com/brentdax/heroku-certs/internal/cli"
	"github.com/brentdax/heroku-certs/internal/config"
	"github.com/joho/godotenv"
)

// version is set by goreleaser via ldflags
var version = "dev"

func main() {
	// A .env in the working directory is optional.
	_ = godotenv.Load()

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cli.SetEnv(env)

	cli.SetVersion(version)
	cli.Execute()
}
