// Package menuseed provides the built-in house menu and loads additional
// menu entries from seed files.
//
// A seed file holds one entry per line in the form
//
//	category|name|price|description
//
// Blank lines and lines starting with '#' are ignored. Files may be local
// paths or http(s) URLs, and are transparently gunzipped when their name
// ends in ".gz".
package menuseed

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/tableside-pos/internal/models"
	"github.com/shopspring/decimal"
)

// Entry is a menu item described by a seed file, before it receives an id.
type Entry struct {
	Category    string
	Name        string
	Price       decimal.Decimal
	Description string
}

// Inputs converts entries into catalog inputs.
func Inputs(entries []Entry) []models.MenuItemInput {
	inputs := make([]models.MenuItemInput, len(entries))
	for i, e := range entries {
		inputs[i] = models.MenuItemInput{
			Name:        e.Name,
			Price:       e.Price,
			Category:    e.Category,
			Description: e.Description,
		}
	}
	return inputs
}

// sourceResult holds the result of loading a single source
type sourceResult struct {
	index   int
	entries []Entry
	err     error
}

// Loader reads seed sources concurrently.
type Loader struct {
	client *http.Client
}

// NewLoader creates a loader with a bounded HTTP timeout for remote sources
func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load reads every source concurrently and returns their entries in source
// order. Any failing source fails the whole load.
func (l *Loader) Load(ctx context.Context, sources []string) ([]Entry, error) {
	if len(sources) == 0 {
		return nil, nil
	}

	resultChan := make(chan sourceResult, len(sources))

	var wg sync.WaitGroup
	for i, source := range sources {
		wg.Add(1)
		go func(index int, src string) {
			defer wg.Done()

			entries, err := l.loadSource(ctx, src)
			resultChan <- sourceResult{
				index:   index,
				entries: entries,
				err:     err,
			}
		}(i, source)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]sourceResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	var all []Entry
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load seed source %d (%s): %w", i+1, sources[i], result.err)
		}
		all = append(all, result.entries...)
	}
	return all, nil
}

func (l *Loader) loadSource(ctx context.Context, source string) ([]Entry, error) {
	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(source), ".gz") {
		gzReader, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	return ParseEntries(r)
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// ParseEntries reads seed lines from r.
func ParseEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.SplitN(line, "|", 4)
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: want category|name|price[|description], got %q", lineNo, line)
		}

		price, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q: %w", lineNo, fields[2], err)
		}

		entry := Entry{
			Category: strings.TrimSpace(fields[0]),
			Name:     strings.TrimSpace(fields[1]),
			Price:    price,
		}
		if len(fields) == 4 {
			entry.Description = strings.TrimSpace(fields[3])
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return entries, nil
}
