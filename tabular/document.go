package tabular

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// document is the split-orientation layout shared by the structured formats.
type document struct {
	Columns []string `json:"columns" yaml:"columns" toml:"columns" cbor:"columns"`
	Data    [][]any  `json:"data" yaml:"data" toml:"data" cbor:"data"`
}

// toDocument converts f for encoding. cell, when set, rewrites each
// normalized cell; formats that print integral floats without a fraction use
// it to keep them distinguishable from integers.
func toDocument(f *Frame, cell func(any) any) (document, error) {
	if err := f.Validate(); err != nil {
		return document{}, err
	}
	data := make([][]any, len(f.Rows))
	for i, row := range f.Rows {
		data[i] = normalizeRow(row)
		if cell != nil {
			for j, v := range data[i] {
				data[i][j] = cell(v)
			}
		}
	}
	cols := f.Columns
	if cols == nil {
		cols = []string{}
	}
	return document{Columns: cols, Data: data}, nil
}

func (d document) frame() (*Frame, error) {
	f := NewFrame(d.Columns, d.Data...)
	for i, row := range f.Rows {
		for j, v := range row {
			row[j] = normalizeNested(v)
		}
		f.Rows[i] = row
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// normalizeNested converts decoder-specific map types to map[string]any.
func normalizeNested(v any) any {
	switch x := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = normalizeNested(val)
		}
		return out
	case map[string]any:
		for k, val := range x {
			x[k] = normalizeNested(val)
		}
		return x
	case []any:
		for i, val := range x {
			x[i] = normalizeNested(val)
		}
		return x
	}
	return Normalize(v)
}

func readJSON(r io.Reader, _ Options) (*Frame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("tabular: read json: %w", err)
	}
	return doc.frame()
}

func jsonCell(v any) any {
	if fl, ok := v.(float64); ok {
		return json.Number(formatCell(fl))
	}
	return v
}

func writeJSON(w io.Writer, f *Frame, opts Options) error {
	doc, err := toDocument(f, jsonCell)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	if opts.Indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", opts.Indent))
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("tabular: write json: %w", err)
	}
	return nil
}

func readYAML(r io.Reader, _ Options) (*Frame, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("tabular: read yaml: %w", err)
	}
	return doc.frame()
}

type yamlFloat float64

func (y yamlFloat) MarshalYAML() (any, error) {
	fl := float64(y)
	if math.IsInf(fl, 0) || math.IsNaN(fl) {
		return fl, nil
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatCell(fl)}, nil
}

func yamlCell(v any) any {
	if fl, ok := v.(float64); ok {
		return yamlFloat(fl)
	}
	return v
}

func writeYAML(w io.Writer, f *Frame, opts Options) error {
	doc, err := toDocument(f, yamlCell)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if opts.Indent > 0 {
		enc.SetIndent(opts.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("tabular: write yaml: %w", err)
	}
	return enc.Close()
}

func readTOML(r io.Reader, _ Options) (*Frame, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("tabular: read toml: %w", err)
	}
	return doc.frame()
}

// writeTOML fails on missing cells: TOML has no null.
func writeTOML(w io.Writer, f *Frame, opts Options) error {
	doc, err := toDocument(f, nil)
	if err != nil {
		return err
	}
	for i, row := range doc.Data {
		for j, v := range row {
			if v == nil {
				return fmt.Errorf("tabular: write toml: row %d column %q is null", i, doc.Columns[j])
			}
		}
	}
	enc := toml.NewEncoder(w)
	if opts.Indent > 0 {
		enc.Indent = strings.Repeat(" ", opts.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("tabular: write toml: %w", err)
	}
	return nil
}

var cborEnc = func() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

func readCBOR(r io.Reader, _ Options) (*Frame, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("tabular: read cbor: %w", err)
	}
	var doc document
	if err := cbor.Unmarshal(buf.Bytes(), &doc); err != nil {
		return nil, fmt.Errorf("tabular: read cbor: %w", err)
	}
	return doc.frame()
}

func writeCBOR(w io.Writer, f *Frame, _ Options) error {
	doc, err := toDocument(f, nil)
	if err != nil {
		return err
	}
	b, err := cborEnc.Marshal(doc)
	if err != nil {
		return fmt.Errorf("tabular: write cbor: %w", err)
	}
	_, err = w.Write(b)
	return err
}
