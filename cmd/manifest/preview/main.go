package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-l10n/internal/dashboard"
	"github.com/goliatone/go-l10n/internal/manifest"
)

func main() {
	var (
		manifestDir = flag.String("manifest-dir", "manifests", "Path to the project manifest root")
		filePath    = flag.String("file", "", "Manifest file to preview (relative to the manifest root)")
		renderInfo  = flag.Bool("render-info", true, "Render the info body into HTML as part of the preview")
	)

	flag.Parse()

	if *filePath == "" {
		log.Fatalf("--file is required")
	}

	loader := manifest.NewLoader(os.DirFS(*manifestDir), manifest.LoaderConfig{})
	parsed, err := loader.LoadFile(context.Background(), *filePath)
	if err != nil {
		log.Fatalf("load manifest: %v", err)
	}

	encoded, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		log.Fatalf("encode manifest: %v", err)
	}
	fmt.Fprintf(os.Stdout, "Manifest:\n%s\n", encoded)

	if *renderInfo && parsed.Info != "" {
		html, err := dashboard.NewGoldmarkInfoRenderer().RenderInfo(parsed.Info)
		if err != nil {
			log.Fatalf("render info: %v", err)
		}
		fmt.Fprintf(os.Stdout, "\nRendered info:\n%s\n", html)
	}
}
