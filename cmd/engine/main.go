package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krzysztofwos/toy-payments-engine/internal/config"
	"github.com/krzysztofwos/toy-payments-engine/internal/csvio"
	"github.com/krzysztofwos/toy-payments-engine/internal/handlers"
	"github.com/krzysztofwos/toy-payments-engine/internal/ledger"
	"github.com/krzysztofwos/toy-payments-engine/internal/services"
	"github.com/krzysztofwos/toy-payments-engine/internal/websocket"
)

func main() {
	output := flag.String("output", "", "write the snapshot CSV to this file instead of stdout")
	serve := flag.Bool("serve", false, "keep running and expose the snapshot API after processing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <transactions.csv>\n\nUse \"-\" to read the log from stdin.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	in, err := openInput(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to open input: %v", err)
	}
	defer in.Close()

	out, err := openOutput(*output)
	if err != nil {
		log.Fatalf("failed to open output: %v", err)
	}
	defer out.Close()

	registry := ledger.New()
	hub := websocket.NewHub()
	processor := services.NewProcessor(registry, hub)

	if !*serve {
		if _, err := processor.Run(csvio.NewReader(in), csvio.NewWriter(out)); err != nil {
			log.Fatalf("processing failed: %v", err)
		}
		return
	}

	cfg := config.Load()
	handler := handlers.New(cfg, registry, hub, processor.RunID())
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("snapshot API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	if _, err := processor.Run(csvio.NewReader(in), csvio.NewWriter(out)); err != nil {
		log.Fatalf("processing failed: %v", err)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
