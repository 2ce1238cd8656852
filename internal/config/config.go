// Package config loads a dataset schema definition from YAML, JSON, or TOML
// and converts it into the canonical schema.Schema the rest of the
// toolchain operates on. The conversion follows the same shape as the
// teacher's internal/parser/toml converter (raw struct -> per-table ->
// per-column, each wrapped with its position for error context), widened to
// cover three source formats instead of one.
package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/guimmamanna/synthforge/internal/schema"
)

// Format identifies a schema source syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat infers the source format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("config: cannot infer format from file %q; use --config-format", path)
	}
}

// Loaded bundles the parsed schema with the config hash computed over its
// raw source, mirroring the original implementation's util.hashing.hash_config
// used to stamp run metadata.
type Loaded struct {
	Schema     *schema.Schema
	ConfigHash string
}

// LoadFile reads and parses the schema file at path, inferring the format
// from its extension unless format is explicitly non-empty.
func LoadFile(path string, format Format) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	if format == "" {
		format, err = DetectFormat(path)
		if err != nil {
			return nil, err
		}
	}
	return Load(data, format)
}

// Load parses raw schema bytes in the given format into a canonical Schema.
func Load(data []byte, format Format) (*Loaded, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	tableOrder, columnOrder, err := extractOrder(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: determine declaration order: %w", err)
	}

	s, err := newConverter(raw, tableOrder, columnOrder).convert()
	if err != nil {
		return nil, err
	}

	hash, err := configHash(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: hash: %w", err)
	}

	return &Loaded{Schema: s, ConfigHash: hash}, nil
}

// rawColumn, rawForeignKey, rawTable, rawDataset, rawRule, and rawSchema
// are the on-disk shapes. A single struct tag set carries json/yaml/toml
// names because the three encoders never disagree on field naming here.
type rawColumn struct {
	Type         string    `json:"type" yaml:"type" toml:"type"`
	Nullable     bool      `json:"nullable" yaml:"nullable" toml:"nullable"`
	Unique       bool      `json:"unique" yaml:"unique" toml:"unique"`
	Range        []any     `json:"range" yaml:"range" toml:"range"`
	Regex        string    `json:"regex" yaml:"regex" toml:"regex"`
	Values       []string  `json:"values" yaml:"values" toml:"values"`
	Weights      []float64 `json:"weights" yaml:"weights" toml:"weights"`
	Distribution string    `json:"distribution" yaml:"distribution" toml:"distribution"`
	Length       []int     `json:"length" yaml:"length" toml:"length"`
	PII          bool      `json:"pii" yaml:"pii" toml:"pii"`
}

type rawForeignKey struct {
	Column    string `json:"column" yaml:"column" toml:"column"`
	RefTable  string `json:"ref_table" yaml:"ref_table" toml:"ref_table"`
	RefColumn string `json:"ref_column" yaml:"ref_column" toml:"ref_column"`
}

type rawTable struct {
	PrimaryKey  string               `json:"primary_key" yaml:"primary_key" toml:"primary_key"`
	Columns     map[string]rawColumn `json:"columns" yaml:"columns" toml:"columns"`
	ForeignKeys []rawForeignKey      `json:"foreign_keys" yaml:"foreign_keys" toml:"foreign_keys"`
}

type rawDataset struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Seed        int64  `json:"seed" yaml:"seed" toml:"seed"`
	Mode        string `json:"mode" yaml:"mode" toml:"mode"`
	Size        any    `json:"size" yaml:"size" toml:"size"`
	MaxAttempts int    `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
}

type rawRule struct {
	If   string   `json:"if" yaml:"if" toml:"if"`
	Then []string `json:"then" yaml:"then" toml:"then"`
}

type rawSchema struct {
	Dataset rawDataset          `json:"dataset" yaml:"dataset" toml:"dataset"`
	Tables  map[string]rawTable `json:"tables" yaml:"tables" toml:"tables"`
	Rules   []rawRule           `json:"rules" yaml:"rules" toml:"rules"`
}

func decodeRaw(data []byte, format Format) (*rawSchema, error) {
	var raw rawSchema
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return &raw, nil
}

// converter mirrors the teacher's converter: one pass over tables, one over
// each table's columns, wrapping every error with the name of the thing
// that failed to convert.
type converter struct {
	raw         *rawSchema
	tableOrder  []string
	columnOrder map[string][]string
}

func newConverter(raw *rawSchema, tableOrder []string, columnOrder map[string][]string) *converter {
	return &converter{raw: raw, tableOrder: tableOrder, columnOrder: columnOrder}
}

func (c *converter) convert() (*schema.Schema, error) {
	size, err := normalizeSize(c.raw.Dataset.Size, c.tableOrder)
	if err != nil {
		return nil, fmt.Errorf("config: dataset.size: %w", err)
	}

	s := &schema.Schema{
		Dataset: schema.Dataset{
			Name:        c.raw.Dataset.Name,
			Seed:        c.raw.Dataset.Seed,
			Mode:        schema.Mode(c.raw.Dataset.Mode),
			Size:        size,
			MaxAttempts: c.raw.Dataset.MaxAttempts,
		},
		Tables:     make(map[string]*schema.Table, len(c.raw.Tables)),
		TableOrder: c.tableOrder,
	}

	for _, name := range c.tableOrder {
		rt, ok := c.raw.Tables[name]
		if !ok {
			continue
		}
		t, err := c.convertTable(name, &rt)
		if err != nil {
			return nil, fmt.Errorf("config: table %q: %w", name, err)
		}
		s.Tables[name] = t
	}

	for i, rr := range c.raw.Rules {
		if rr.If == "" {
			return nil, fmt.Errorf("config: rules[%d]: %q is required", i, "if")
		}
		s.Rules = append(s.Rules, schema.Rule{If: rr.If, Then: rr.Then})
	}

	return s, nil
}

func (c *converter) convertTable(name string, rt *rawTable) (*schema.Table, error) {
	order := c.columnOrder[name]
	t := &schema.Table{
		Name:        name,
		PrimaryKey:  rt.PrimaryKey,
		Columns:     make(map[string]*schema.Column, len(rt.Columns)),
		ColumnOrder: order,
	}
	for _, colName := range order {
		rc, ok := rt.Columns[colName]
		if !ok {
			continue
		}
		col, err := c.convertColumn(colName, &rc)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", colName, err)
		}
		t.Columns[colName] = col
	}
	for _, rfk := range rt.ForeignKeys {
		t.ForeignKeys = append(t.ForeignKeys, schema.ForeignKey{
			Column:    rfk.Column,
			RefTable:  rfk.RefTable,
			RefColumn: rfk.RefColumn,
		})
	}
	return t, nil
}

func (c *converter) convertColumn(name string, rc *rawColumn) (*schema.Column, error) {
	if rc.Type == "" {
		return nil, fmt.Errorf("type is required")
	}
	return &schema.Column{
		Name:         name,
		Type:         schema.ColumnType(rc.Type),
		Nullable:     rc.Nullable,
		Unique:       rc.Unique,
		Range:        rc.Range,
		Regex:        rc.Regex,
		Values:       rc.Values,
		Weights:      rc.Weights,
		Distribution: schema.Distribution(rc.Distribution),
		Length:       rc.Length,
		PII:          rc.PII,
	}, nil
}

// normalizeSize implements the original DSL's scalar-broadcast rule: a bare
// integer for dataset.size applies that row count to every declared table.
func normalizeSize(raw any, tableNames []string) (map[string]int, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]int{}, nil
	case map[string]any:
		out := make(map[string]int, len(v))
		for k, n := range v {
			count, err := toInt(n)
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", k, err)
			}
			out[k] = count
		}
		return out, nil
	default:
		count, err := toInt(v)
		if err != nil {
			return nil, err
		}
		out := make(map[string]int, len(tableNames))
		for _, name := range tableNames {
			out[name] = count
		}
		return out, nil
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

// extractOrder recovers declaration order for tables and their columns,
// which the format-specific map decode above throws away. Determinism of
// the dependency planner's tie-breaking (see internal/plan) depends on this.
func extractOrder(data []byte, format Format) ([]string, map[string][]string, error) {
	switch format {
	case FormatJSON:
		return extractOrderJSON(data)
	case FormatYAML:
		return extractOrderYAML(data)
	case FormatTOML:
		return extractOrderTOML(data)
	default:
		return nil, nil, fmt.Errorf("unsupported format %q", format)
	}
}

func extractOrderJSON(data []byte) ([]string, map[string][]string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, err
	}
	tablesRaw, ok := top["tables"]
	if !ok {
		return nil, nil, nil
	}
	tableOrder, err := jsonObjectKeyOrder(tablesRaw)
	if err != nil {
		return nil, nil, err
	}

	var tables map[string]json.RawMessage
	if err := json.Unmarshal(tablesRaw, &tables); err != nil {
		return nil, nil, err
	}
	columnOrder := make(map[string][]string, len(tables))
	for name, raw := range tables {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, nil, err
		}
		colsRaw, ok := fields["columns"]
		if !ok {
			continue
		}
		order, err := jsonObjectKeyOrder(colsRaw)
		if err != nil {
			return nil, nil, err
		}
		columnOrder[name] = order
	}
	return tableOrder, columnOrder, nil
}

func jsonObjectKeyOrder(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object")
	}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string key")
		}
		keys = append(keys, key)
		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func extractOrderYAML(data []byte) ([]string, map[string][]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil, nil
	}
	doc := root.Content[0]
	tablesNode := yamlMappingValue(doc, "tables")
	if tablesNode == nil {
		return nil, nil, nil
	}
	tableOrder := yamlMappingKeys(tablesNode)
	columnOrder := make(map[string][]string, len(tableOrder))
	for i := 0; i < len(tablesNode.Content); i += 2 {
		name := tablesNode.Content[i].Value
		tableNode := tablesNode.Content[i+1]
		if colsNode := yamlMappingValue(tableNode, "columns"); colsNode != nil {
			columnOrder[name] = yamlMappingKeys(colsNode)
		}
	}
	return tableOrder, columnOrder, nil
}

func yamlMappingValue(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func yamlMappingKeys(m *yaml.Node) []string {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}

func extractOrderTOML(data []byte) ([]string, map[string][]string, error) {
	var raw map[string]any
	meta, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, nil, err
	}
	var tableOrder []string
	seenTable := map[string]bool{}
	columnOrder := map[string][]string{}
	seenColumn := map[string]map[string]bool{}
	for _, key := range meta.Keys() {
		parts := []string(key)
		if len(parts) < 2 || parts[0] != "tables" {
			continue
		}
		tableName := parts[1]
		if !seenTable[tableName] {
			seenTable[tableName] = true
			tableOrder = append(tableOrder, tableName)
		}
		if len(parts) >= 4 && parts[2] == "columns" {
			colName := parts[3]
			if seenColumn[tableName] == nil {
				seenColumn[tableName] = map[string]bool{}
			}
			if !seenColumn[tableName][colName] {
				seenColumn[tableName][colName] = true
				columnOrder[tableName] = append(columnOrder[tableName], colName)
			}
		}
	}
	return tableOrder, columnOrder, nil
}

// configHash reproduces the original tool's util.hashing.hash_config: a
// SHA-256 digest of the config serialized as sorted-key, whitespace-free
// JSON, so that reordering unrelated keys in a schema file does not change
// the hash that gets stamped into run metadata.
func configHash(data []byte, format Format) (string, error) {
	var generic any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &generic); err != nil {
			return "", err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return "", err
		}
		generic = stringifyYAMLKeys(generic)
	case FormatTOML:
		var m map[string]any
		if _, err := toml.Decode(string(data), &m); err != nil {
			return "", err
		}
		generic = m
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// stringifyYAMLKeys converts the map[interface{}]interface{} nodes yaml.v3
// can still produce for nested maps into map[string]interface{}, which is
// what encoding/json needs to marshal with sorted keys.
func stringifyYAMLKeys(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = stringifyYAMLKeys(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[fmt.Sprint(k)] = stringifyYAMLKeys(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = stringifyYAMLKeys(e)
		}
		return out
	default:
		return val
	}
}

// ReadSchema is a convenience wrapper for callers (the CLI) that already
// hold an open reader and a known format, e.g. stdin piping.
func ReadSchema(r io.Reader, format Format) (*Loaded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Load(data, format)
}
