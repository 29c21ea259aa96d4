package openapi

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"net/http"
	"strings"
	"text/template"
)

//go:embed swagger/*
var swagFS embed.FS

// Handler returns an http.Handler serving a Swagger UI page for doc at the
// root, the document as JSON at /docs.json and as YAML at /docs.yaml. The
// prefix is stripped, so mount it as is:
//
//	http.Handle("/docs/", openapi.HandlerMust("/docs/", doc))
func Handler(prefix string, doc map[string]any) (http.Handler, error) {
	if _, err := Load(context.Background(), doc); err != nil {
		return nil, err
	}

	// json.Marshal escapes <, > and &, so specJSON cannot close the script
	// element it is templated into.
	specJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	specYAML, err := EncodeYAML(doc)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(swagFS, "swagger/index.html")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{"Docs": string(specJSON)}); err != nil {
		return nil, err
	}
	index := buf.Bytes()

	return http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "", "/":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write(index)
		case "/docs.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(specJSON)
		case "/docs.yaml":
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write(specYAML)
		default:
			http.NotFound(w, r)
		}
	})), nil
}

// HandlerMust is like Handler but panics on error.
func HandlerMust(prefix string, doc map[string]any) http.Handler {
	h, err := Handler(prefix, doc)
	if err != nil {
		panic(err)
	}
	return h
}
