package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/locqa"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *Config
	Logger  *slog.Logger
	Records locqa.RecordStore
	Source  locqa.DatasetReader
	Builder locqa.StoreBuilder

	// Retriever is wired only for commands that answer questions.
	Retriever locqa.Retriever

	// Seed returns a seed for example selection when none is given.
	Seed func() uint64
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Path to config file (default: $LOCQA_CONFIG or ~/.locqa/config.yaml)" type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Build   BuildCmd   `cmd:"" help:"Build the vector store from the dataset if it does not exist"`
	Ask     AskCmd     `cmd:"" help:"Answer a question from the closest passage"`
	Example ExampleCmd `cmd:"" help:"Answer a randomly picked example question"`
	Info    InfoCmd    `cmd:"" help:"Show the vector store location and size"`
	Serve   ServeCmd   `cmd:"" help:"Serve the question answering HTTP API"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Dataset string `help:"SQuAD JSON or JSONL dataset to build from (overrides config)" type:"path"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to answer"`
}

// ExampleCmd is the "example" subcommand.
type ExampleCmd struct {
	Seed uint64 `help:"Seed for example selection (0 picks at random)"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}
