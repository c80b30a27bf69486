// Package config decodes the TOML configuration file the CLI collaborator
// reads (spec §6): one or more `[[table]]` blocks, each naming a source, its
// columns and their rules, and any cross-column relations. The core engine
// never sees TOML directly — config walks the same column.Builder /
// relation.Spec / reader.Reader surface a library caller would use.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/GrGLeo/dataguard/column"
	"github.com/GrGLeo/dataguard/reader"
	"github.com/GrGLeo/dataguard/relation"
	"github.com/GrGLeo/dataguard/rule"
	"github.com/GrGLeo/dataguard/table"
	"github.com/GrGLeo/dataguard/util"
)

// File is the root of the TOML document.
type File struct {
	Table []TableConfig `toml:"table"`
}

// TableConfig is one `[[table]]` block (spec §6's normative schema):
// name/path/format identify the source directly, matching spec §6 rather
// than a nested source subtable. HasHeader/NullMarkers/Comma are CSV-only
// extensions the normative schema leaves unspecified.
type TableConfig struct {
	Name        string           `toml:"name"`
	Path        string           `toml:"path"`
	Format      string           `toml:"format"` // "csv" | "parquet", default "csv"
	HasHeader   bool             `toml:"has_header"`
	NullMarkers []string         `toml:"null_markers"`
	Comma       string           `toml:"comma"`
	Column      []ColumnConfig   `toml:"column"`
	Relation    []RelationConfig `toml:"relation"`
}

// ColumnConfig is one `[[table.column]]` block.
type ColumnConfig struct {
	Name       string       `toml:"name"`
	Datatype   string       `toml:"datatype"` // "string" | "integer" | "float" | "date"
	DateFormat string       `toml:"date_format"`
	Rule       []RuleConfig `toml:"rule"`
}

// RuleConfig is one `[[table.column.rule]]` block. Only the fields
// relevant to Name are read; the rest are ignored.
type RuleConfig struct {
	Name      string   `toml:"name"` // catalog rule kind, e.g. "with_min_length"
	Threshold *float64 `toml:"threshold"`

	Min    *float64 `toml:"min"`
	Max    *float64 `toml:"max"`
	Values []string `toml:"values"`
	Regex  string   `toml:"regex"`
	Flags  string   `toml:"flags"`

	Strict bool `toml:"strict"`

	MaxStdDev          float64 `toml:"max_std_dev"`
	MaxVariancePercent float64 `toml:"max_variance_percent"`

	Year  *int `toml:"year"`
	Month *int `toml:"month"`
	Day   *int `toml:"day"`
}

// RelationConfig is one `[[table.relation]]` block.
type RelationConfig struct {
	Kind      string   `toml:"kind"` // "date_compare" | "numeric_compare"
	Left      string   `toml:"left"`
	Right     string   `toml:"right"`
	Op        string   `toml:"op"`
	Threshold *float64 `toml:"threshold"`
}

// Load parses a TOML config file from path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return &f, nil
}

// Specs translates every `[[table]]` block into a table.Spec, ready for
// table.Prepare.
func (f *File) Specs() ([]table.Spec, error) {
	specs := make([]table.Spec, 0, len(f.Table))
	for _, tc := range f.Table {
		spec, err := tc.toSpec()
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tc.Name, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (tc TableConfig) toSpec() (table.Spec, error) {
	src, err := tc.toReader()
	if err != nil {
		return table.Spec{}, err
	}

	builders := make([]column.Builder, 0, len(tc.Column))
	for _, cc := range tc.Column {
		spec, err := cc.toColumnSpec()
		if err != nil {
			return table.Spec{}, fmt.Errorf("column %q: %w", cc.Name, err)
		}
		builders = append(builders, rawBuilder{spec})
	}

	relations := make([]relation.Spec, 0, len(tc.Relation))
	for _, rc := range tc.Relation {
		rel, err := rc.toRelationSpec()
		if err != nil {
			return table.Spec{}, err
		}
		relations = append(relations, rel)
	}

	return table.Spec{Name: tc.Name, Source: src, Columns: builders, Relations: relations}, nil
}

func (tc TableConfig) toReader() (reader.Reader, error) {
	switch tc.Format {
	case "csv", "":
		names := util.TransformSlice(tc.Column, func(c ColumnConfig) string { return c.Name })
		var comma rune
		if tc.Comma != "" {
			comma = []rune(tc.Comma)[0]
		}
		return &reader.CSV{
			Path:        tc.Path,
			ColumnNames: names,
			HasHeader:   tc.HasHeader,
			NullMarkers: tc.NullMarkers,
			Comma:       comma,
		}, nil
	case "parquet":
		cols := make([]reader.ColumnSchema, len(tc.Column))
		for i, c := range tc.Column {
			t, err := parseColumnType(c.Datatype)
			if err != nil {
				return nil, err
			}
			cols[i] = reader.ColumnSchema{Name: c.Name, Type: t, Typed: true}
		}
		return &reader.Parquet{Path: tc.Path, Columns: cols}, nil
	default:
		return nil, fmt.Errorf("unknown source format %q", tc.Format)
	}
}

// rawBuilder adapts an already-assembled column.Spec to the
// column.Builder interface, since config builds rules directly from TOML
// data rather than chaining fluent builder calls.
type rawBuilder struct{ spec *column.Spec }

func (r rawBuilder) Build() *column.Spec { return r.spec }

func parseColumnType(s string) (rule.ColumnType, error) {
	switch s {
	case "string":
		return rule.String, nil
	case "integer":
		return rule.Integer, nil
	case "float":
		return rule.Float, nil
	case "date":
		return rule.Date, nil
	default:
		return 0, fmt.Errorf("unknown column datatype %q", s)
	}
}
