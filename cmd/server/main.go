// Package main implements the entry point for the rote API server, a
// single-learner spaced repetition service: it stores flashcards, schedules
// reviews with an SM-2-derived engine, and serves the review queue over HTTP.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
