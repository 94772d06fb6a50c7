// Package fs reads source datasets from the local filesystem.
package fs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/locqa"
)

// Ensure DatasetReader implements locqa.DatasetReader at compile time.
var _ locqa.DatasetReader = (*DatasetReader)(nil)

// DatasetReader reads question/context pairs from a file.
//
// Files ending in .jsonl or .ndjson hold one {"question", "context"} object
// per line. Any other file is parsed as a SQuAD-style JSON document.
type DatasetReader struct {
	path string
}

// NewDatasetReader creates a DatasetReader for the file at path.
func NewDatasetReader(path string) *DatasetReader {
	return &DatasetReader{path: path}
}

// ReadPairs returns every pair in file order.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot be parsed.
func (r *DatasetReader) ReadPairs(ctx context.Context) ([]locqa.Pair, error) {
	if r.path == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "dataset path required")
	}

	f, err := os.Open(r.path)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, locqa.Errorf(locqa.ENOTFOUND, "dataset %q does not exist", r.path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(r.path)) {
	case ".jsonl", ".ndjson":
		return ReadJSONL(ctx, f)
	default:
		return ReadSQuAD(ctx, f)
	}
}

type squadFile struct {
	Data []struct {
		Title      string `json:"title"`
		Paragraphs []struct {
			Context string `json:"context"`
			QAs     []struct {
				Question string `json:"question"`
			} `json:"qas"`
		} `json:"paragraphs"`
	} `json:"data"`
}

// ReadSQuAD parses a SQuAD-style document. Each question yields one pair;
// a paragraph without questions yields a single pair with an empty question.
func ReadSQuAD(ctx context.Context, r io.Reader) ([]locqa.Pair, error) {
	var doc squadFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, locqa.Errorf(locqa.EINVALID, "invalid SQuAD dataset: %v", err)
	}

	var pairs []locqa.Pair
	for _, article := range doc.Data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, p := range article.Paragraphs {
			if len(p.QAs) == 0 {
				pairs = append(pairs, locqa.Pair{Context: p.Context})
				continue
			}
			for _, qa := range p.QAs {
				pairs = append(pairs, locqa.Pair{Question: qa.Question, Context: p.Context})
			}
		}
	}
	return pairs, nil
}

// ReadJSONL parses one pair per non-blank line.
func ReadJSONL(ctx context.Context, r io.Reader) ([]locqa.Pair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var pairs []locqa.Pair
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var p locqa.Pair
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, locqa.Errorf(locqa.EINVALID, "invalid dataset line %d: %v", line, err)
		}
		pairs = append(pairs, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
