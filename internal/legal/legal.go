// Package legal serves the privacy policy and terms of use shown in the app.
package legal

import (
	"embed"
	"errors"
	"sort"
	"strings"
)

//go:embed docs/*.md
var docs embed.FS

var ErrUnknownDocument = errors.New("unknown document")

// Document is one legal text in Markdown.
type Document struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Get loads a document by name ("privacy" or "terms").
func Get(name string) (Document, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || strings.ContainsAny(name, "/.\\") {
		return Document{}, ErrUnknownDocument
	}

	data, err := docs.ReadFile("docs/" + name + ".md")
	if err != nil {
		return Document{}, ErrUnknownDocument
	}

	body := string(data)
	title := name
	if first, _, ok := strings.Cut(body, "\n"); ok && strings.HasPrefix(first, "# ") {
		title = strings.TrimPrefix(first, "# ")
	}
	return Document{Name: name, Title: title, Body: body}, nil
}

// Names lists the available documents.
func Names() []string {
	entries, err := docs.ReadDir("docs")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}
