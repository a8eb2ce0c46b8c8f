package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"
	"github.com/vlatan/video-playlist/internal/app"
)

func main() {

	// The environment takes precedence, .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load the .env file; %v", err)
	}

	if err := app.New().Run(); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}
