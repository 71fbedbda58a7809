package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/neorest/neorest/pkg/client"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (url, username, password, timeout)")
	url := flag.String("url", "", "Server discovery URL (overrides config, default http://localhost:7474)")
	query := flag.String("query", "", "Cypher query to execute")
	params := flag.String("params", "", "Query parameters as a JSON object")
	index := flag.String("index", "", "Node index name for an indexed lookup")
	property := flag.String("property", "", "Property name for an indexed lookup")
	value := flag.String("value", "", "Property value for an indexed lookup")
	verbose := flag.Bool("v", false, "Enable debug logging")

	flag.Parse()

	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg := client.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = client.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Cannot load config: %v", err)
		}
	}
	if *url != "" {
		cfg.URL = *url
	}

	db := client.NewFromConfig(cfg)
	ctx := context.Background()

	switch {
	case *query != "":
		runQuery(ctx, db, *query, *params)
	case *index != "":
		runLookup(ctx, db, *index, *property, *value)
	default:
		version, err := db.Version(ctx)
		if err != nil {
			log.Fatalf("Cannot reach server at %s: %v", cfg.URL, err)
		}
		fmt.Printf("Neo4j server at %s, version %g\n", cfg.URL, version)
	}
}

func runQuery(ctx context.Context, db *client.GraphDatabase, query, rawParams string) {
	var params map[string]any
	if rawParams != "" {
		if err := json.Unmarshal([]byte(rawParams), &params); err != nil {
			log.Fatalf("-params is not a JSON object: %v", err)
		}
	}

	result, err := db.Query(ctx, query, params)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, row := range result.Rows {
		if err := enc.Encode(row); err != nil {
			log.Fatalf("Cannot encode row: %v", err)
		}
	}
}

func runLookup(ctx context.Context, db *client.GraphDatabase, index, property, value string) {
	if property == "" || value == "" {
		log.Fatal("-index requires -property and -value")
	}

	nodes, err := db.GetIndexedNodes(ctx, index, property, value)
	if err != nil {
		log.Fatalf("Indexed lookup failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	for _, node := range nodes {
		if err := enc.Encode(node); err != nil {
			log.Fatalf("Cannot encode node: %v", err)
		}
	}
}
