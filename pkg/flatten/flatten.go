package flatten

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"garnet-hq/notion-backup/pkg/notion"
)

// Base columns present in every export, ahead of the property columns.
var baseColumns = []string{"ID", "Created", "Last Edited"}

// Columns builds the fixed column order for one export run: the base
// columns followed by the union of property names observed across all
// records, sorted for determinism.
//
// Fixing the order once per run guarantees a rectangular table even when
// property presence varies record to record.
func Columns(records []notion.Record) []string {
	seen := make(map[string]bool)
	for _, rec := range records {
		for name := range rec.Properties {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	columns := make([]string, 0, len(baseColumns)+len(names))
	columns = append(columns, baseColumns...)
	columns = append(columns, names...)
	return columns
}

// Flattener converts typed records into flat rows of string cells.
//
// Flattening is total: every property kind, including kinds this tool does
// not model, reduces to exactly one string; absent values reduce to the
// empty string. CSV quoting is not handled here; the encoding/csv writer
// owns escaping.
type Flattener struct {
	// ListSeparator joins multi-valued cells (multi-select, people, files,
	// relations). Default ", ".
	ListSeparator string

	// DateRangeSeparator joins the start and end of a date range.
	// Default " - ".
	DateRangeSeparator string

	// TrueLabel and FalseLabel render checkbox values. Defaults "Yes"/"No".
	TrueLabel  string
	FalseLabel string
}

// New creates a Flattener with the default separators and labels.
func New() *Flattener {
	return &Flattener{
		ListSeparator:      ", ",
		DateRangeSeparator: " - ",
		TrueLabel:          "Yes",
		FalseLabel:         "No",
	}
}

// Flatten renders one record as a row matching the given column order.
// Columns must start with the base columns, as produced by Columns.
// Properties the record does not have become empty cells, so every row has
// the same width.
func (f *Flattener) Flatten(rec notion.Record, columns []string) []string {
	row := make([]string, 0, len(columns))
	for i, name := range columns {
		switch {
		case i == 0:
			row = append(row, rec.ID)
		case i == 1:
			row = append(row, rec.CreatedTime)
		case i == 2:
			row = append(row, rec.LastEditedTime)
		default:
			prop, ok := rec.Properties[name]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, f.cell(rec.ID, prop))
		}
	}
	return row
}

// cell renders one property value as a single string.
func (f *Flattener) cell(recordID string, prop notion.Property) string {
	switch prop.Type {
	case "title":
		return joinRichText(prop.Title)

	case "rich_text":
		return joinRichText(prop.RichText)

	case "number":
		if prop.Number == nil {
			return ""
		}
		return formatNumber(*prop.Number)

	case "select":
		if prop.Select == nil {
			return ""
		}
		return prop.Select.Name

	case "status":
		if prop.Status == nil {
			return ""
		}
		return prop.Status.Name

	case "multi_select":
		names := make([]string, 0, len(prop.MultiSelect))
		for _, opt := range prop.MultiSelect {
			names = append(names, opt.Name)
		}
		return strings.Join(names, f.ListSeparator)

	case "date":
		return f.formatDate(prop.Date)

	case "people":
		names := make([]string, 0, len(prop.People))
		for _, person := range prop.People {
			names = append(names, person.Name)
		}
		return strings.Join(names, f.ListSeparator)

	case "files":
		names := make([]string, 0, len(prop.Files))
		for _, file := range prop.Files {
			names = append(names, file.Name)
		}
		return strings.Join(names, f.ListSeparator)

	case "checkbox":
		if prop.Checkbox != nil && *prop.Checkbox {
			return f.TrueLabel
		}
		return f.FalseLabel

	case "url":
		return deref(prop.URL)

	case "email":
		return deref(prop.Email)

	case "phone_number":
		return deref(prop.PhoneNumber)

	case "relation":
		ids := make([]string, 0, len(prop.Relation))
		for _, rel := range prop.Relation {
			ids = append(ids, rel.ID)
		}
		return strings.Join(ids, f.ListSeparator)

	case "formula":
		return f.formatFormula(prop.Formula)

	case "created_time":
		return deref(prop.CreatedTime)

	case "last_edited_time":
		return deref(prop.LastEditedTime)

	default:
		return f.coerceUnknown(recordID, prop)
	}
}

// formatDate renders a date or date range.
func (f *Flattener) formatDate(date *notion.DateValue) string {
	if date == nil {
		return ""
	}
	if date.End != nil && *date.End != "" {
		return date.Start + f.DateRangeSeparator + *date.End
	}
	return date.Start
}

// formatFormula renders a computed formula result by its result kind.
func (f *Flattener) formatFormula(formula *notion.Formula) string {
	if formula == nil {
		return ""
	}
	switch formula.Type {
	case "string":
		return deref(formula.String)
	case "number":
		if formula.Number == nil {
			return ""
		}
		return formatNumber(*formula.Number)
	case "boolean":
		if formula.Boolean != nil && *formula.Boolean {
			return f.TrueLabel
		}
		return f.FalseLabel
	case "date":
		return f.formatDate(formula.Date)
	default:
		return ""
	}
}

// coerceUnknown renders a property kind this tool does not model by
// extracting the kind's value from the raw JSON. It never fails; a value
// that cannot be rendered becomes an empty cell and is logged as a defect.
func (f *Flattener) coerceUnknown(recordID string, prop notion.Property) string {
	raw := prop.Raw()
	if raw == nil {
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		slog.Warn("unrenderable property value, substituting empty cell",
			"record_id", recordID,
			"property_type", prop.Type,
			"error", err,
		)
		return ""
	}

	value, ok := fields[prop.Type]
	if !ok {
		return ""
	}
	return f.coerceValue(recordID, prop.Type, value)
}

// coerceValue renders an arbitrary JSON value as a single string.
func (f *Flattener) coerceValue(recordID, propType string, raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		slog.Warn("unrenderable property value, substituting empty cell",
			"record_id", recordID,
			"property_type", propType,
			"error", err,
		)
		return ""
	}

	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return formatNumber(val)
	case bool:
		if val {
			return f.TrueLabel
		}
		return f.FalseLabel
	default:
		// Arrays and objects keep their compact JSON form.
		return string(raw)
	}
}

// joinRichText concatenates rich text fragments with spaces, matching the
// plain-text reading of the value.
func joinRichText(fragments []notion.RichText) string {
	parts := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		parts = append(parts, fragment.PlainText)
	}
	return strings.Join(parts, " ")
}

// formatNumber renders a number in canonical decimal form with no
// locale-specific grouping.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// deref returns the pointed-to string or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
