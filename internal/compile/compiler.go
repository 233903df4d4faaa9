// Package compile orchestrates one full export: collection metadata, tree,
// traversal, per-document fetch, anchor assignment, rendering, and assembly of
// the final single-file HTML artifact.
package compile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/outbook/internal/logfields"
	"git.home.luguber.info/inful/outbook/internal/nav"
	"git.home.luguber.info/inful/outbook/internal/outline"
	"git.home.luguber.info/inful/outbook/internal/render"
)

// Source is the remote API surface the compiler consumes. outline.Client
// implements it; tests substitute an in-memory fake.
type Source interface {
	CollectionInfo(ctx context.Context, collectionID string) (*outline.Collection, error)
	CollectionTree(ctx context.Context, collectionID string) ([]outline.NavigationNode, error)
	DocumentInfo(ctx context.Context, documentID string) (*outline.Document, error)
}

// RetainedDocument is a successfully fetched document together with its tree depth.
type RetainedDocument struct {
	outline.Document
	Depth int
}

// Result is the outcome of one compilation.
type Result struct {
	CollectionName string
	HTML           string
	DocumentCount  int // retained documents
	TreeCount      int // documents present in the tree
	Skipped        []string
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithClock overrides the timestamp source (used by tests; output is
// byte-identical across runs except for this timestamp).
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) { c.now = now }
}

// WithProvenance sets the provenance label shown in the artifact header,
// typically the API host the collection was exported from.
func WithProvenance(label string) Option {
	return func(c *Compiler) { c.provenance = label }
}

// Compiler sequences one export run. It is single-threaded: documents are
// fetched and rendered strictly in traversal order, so output order is
// deterministic and matches the tree minus dropped failures.
type Compiler struct {
	source     Source
	pipeline   *render.Pipeline
	now        func() time.Time
	provenance string
}

// New creates a compiler over the given source.
func New(source Source, opts ...Option) *Compiler {
	c := &Compiler{
		source:     source,
		pipeline:   render.NewPipeline(),
		now:        time.Now,
		provenance: "outbook",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile exports one collection. Failures fetching collection metadata or the
// tree are fatal; a failure fetching an individual document is logged with the
// entry's title and the document is dropped from the output.
func (c *Compiler) Compile(ctx context.Context, collectionID string) (*Result, error) {
	slog.Info("Fetching collection information", logfields.Collection(collectionID))
	col, err := c.source.CollectionInfo(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	slog.Info("Fetching document structure", logfields.Collection(col.Name))
	tree, err := c.source.CollectionTree(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	entries, err := nav.Traverse(tree)
	if err != nil {
		return nil, err
	}
	slog.Info("Found documents", logfields.Documents(len(entries)))

	retained := c.fetchDocuments(ctx, entries)
	skipped := make([]string, 0)
	if len(retained) < len(entries) {
		skipped = skippedTitles(entries, retained)
	}

	anchors := render.BuildAnchors(documentsOf(retained))

	slog.Info("Generating HTML")
	sections := make([]section, len(retained))
	for i, doc := range retained {
		sections[i] = section{
			Anchor:   anchors[doc.ID],
			Title:    doc.Title,
			Depth:    doc.Depth,
			Author:   authorName(doc.Document),
			Updated:  updatedDate(doc.Document),
			Fragment: c.pipeline.Render(doc.Text, anchors),
		}
	}

	var description string
	if col.Description != "" {
		description = c.pipeline.Render(col.Description, anchors)
	}

	html, err := assemblePage(page{
		Title:       col.Name,
		Timestamp:   c.now().Format("2006-01-02 15:04:05"),
		Provenance:  c.provenance,
		Description: description,
		Sections:    sections,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		CollectionName: col.Name,
		HTML:           html,
		DocumentCount:  len(retained),
		TreeCount:      len(entries),
		Skipped:        skipped,
	}, nil
}

// fetchDocuments retrieves content for every entry in traversal order. A fetch
// failure drops the entry and continues; the retained list is append-only and
// keeps traversal order.
func (c *Compiler) fetchDocuments(ctx context.Context, entries []nav.FlatEntry) []RetainedDocument {
	retained := make([]RetainedDocument, 0, len(entries))
	for i, entry := range entries {
		slog.Info("Fetching document",
			logfields.Progress(fmt.Sprintf("%d/%d", i+1, len(entries))),
			logfields.Document(entry.Title))

		doc, err := c.source.DocumentInfo(ctx, entry.ID)
		if err != nil {
			slog.Warn("Could not fetch document, skipping",
				logfields.Document(entry.Title),
				logfields.Error(err))
			continue
		}
		retained = append(retained, RetainedDocument{Document: *doc, Depth: entry.Depth})
	}
	return retained
}

func documentsOf(retained []RetainedDocument) []outline.Document {
	docs := make([]outline.Document, len(retained))
	for i, r := range retained {
		docs[i] = r.Document
	}
	return docs
}

func skippedTitles(entries []nav.FlatEntry, retained []RetainedDocument) []string {
	kept := make(map[string]int, len(retained))
	for _, r := range retained {
		kept[r.ID]++
	}
	var skipped []string
	for _, e := range entries {
		if kept[e.ID] > 0 {
			kept[e.ID]--
			continue
		}
		skipped = append(skipped, e.Title)
	}
	return skipped
}

func authorName(doc outline.Document) string {
	if doc.CreatedBy.Name == "" {
		return "Unknown"
	}
	return doc.CreatedBy.Name
}

// updatedDate is the date portion of the ISO timestamp, "Unknown" when absent.
func updatedDate(doc outline.Document) string {
	if len(doc.UpdatedAt) >= 10 {
		return doc.UpdatedAt[:10]
	}
	if doc.UpdatedAt != "" {
		return doc.UpdatedAt
	}
	return "Unknown"
}
