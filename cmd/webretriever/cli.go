package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/webretriever"
	"github.com/fwojciec/webretriever/rag"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Sources     []webretriever.DataSource
	Collections webretriever.CollectionService
	Chunks      webretriever.ChunkService
	Ingester    rag.Ingester
	Predictor   webretriever.Predictor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `short:"c" type:"path" help:"YAML config file (default $WEBRETRIEVER_CONFIG)"`
	Verbose bool   `short:"v" help:"Log debug messages"`

	Ask     AskCmd     `cmd:"" help:"Ask a question about a data source"`
	Ingest  IngestCmd  `cmd:"" help:"Load a data source into its collection"`
	Serve   ServeCmd   `cmd:"" help:"Serve predictions over HTTP"`
	List    ListCmd    `cmd:"" help:"List collections and their chunk counts"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a collection and its chunks"`
	Sources SourcesCmd `cmd:"" help:"List configured data sources"`
	Phrases PhrasesCmd `cmd:"" help:"Print the phrases shared by every document"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	DataSource string `short:"d" name:"data-source" default:"octoai_docs" help:"Data source selector"`
	Prompt     string `arg:"" help:"Question to ask"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	DataSource  string `arg:"" help:"Data source selector"`
	Force       bool   `short:"f" help:"Re-ingest a populated collection"`
	ArchiveDir  string `short:"a" name:"archive-dir" type:"path" help:"Keep transformed pages as Markdown under this directory"`
	Concurrency int    `short:"n" default:"10" help:"Concurrent fetch limit"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Collection name"`
	Force bool   `help:"Confirm deletion"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// PhrasesCmd is the "phrases" subcommand.
type PhrasesCmd struct {
	Length       int      `short:"n" default:"30" help:"Tokens per phrase"`
	AllDocuments bool     `name:"all-documents" help:"Draw phrases from every document, not only the first"`
	Files        []string `arg:"" help:"Documents to compare; the first is the reference"`
}
