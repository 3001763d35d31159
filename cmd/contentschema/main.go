package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"

	contentschema "github.com/goliatone/go-contentschema"
	"github.com/goliatone/go-contentschema/pkg/project"
)

func main() {
	projectPath := flag.String("project", ".", "project root to scan")
	collection := flag.String("collection", "", "collection to resolve (prompts when empty)")
	contentDir := flag.String("content-dir", "", "content directory override, relative to the project root")
	output := flag.String("output", "", "output file (stdout if empty)")
	list := flag.Bool("list", false, "list discovered collections and exit")
	flag.Parse()

	ctx := context.Background()

	scanner := contentschema.NewScanner()
	collections, err := scanner.Scan(ctx, *projectPath, project.ScanOptions{ContentDir: *contentDir})
	if err != nil {
		log.Fatalf("Failed to scan project: %v", err)
	}
	if len(collections) == 0 {
		log.Fatalf("No collections found in %s", *projectPath)
	}

	if *list {
		for _, c := range collections {
			marker := ""
			if c.CompleteSchema != "" {
				marker = " (schema resolved)"
			}
			fmt.Printf("%s%s\n", c.Name, marker)
		}
		return
	}

	chosen, err := pickCollection(collections, *collection)
	if err != nil {
		log.Fatalf("Failed to select collection: %v", err)
	}
	if chosen.CompleteSchema == "" {
		log.Fatalf("No schema available for collection %q", chosen.Name)
	}

	var pretty json.RawMessage = []byte(chosen.CompleteSchema)
	rendered, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		log.Fatalf("Failed to render schema: %v", err)
	}
	rendered = append(rendered, '\n')

	if *output != "" {
		if err := os.WriteFile(*output, rendered, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Schema written to %s\n", *output)
	} else {
		os.Stdout.Write(rendered)
	}
}

func pickCollection(collections []project.Collection, name string) (project.Collection, error) {
	if name != "" {
		for _, c := range collections {
			if c.Name == name {
				return c, nil
			}
		}
		return project.Collection{}, fmt.Errorf("collection %q not found", name)
	}
	if len(collections) == 1 {
		return collections[0], nil
	}

	options := make([]string, len(collections))
	for i, c := range collections {
		options[i] = c.Name
	}

	var chosen string
	prompt := &survey.Select{
		Message: "Select a collection:",
		Options: options,
	}
	if err := survey.AskOne(prompt, &chosen); err != nil {
		return project.Collection{}, err
	}
	for _, c := range collections {
		if c.Name == chosen {
			return c, nil
		}
	}
	return project.Collection{}, fmt.Errorf("collection %q not found", chosen)
}
