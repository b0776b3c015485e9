package notion

import "encoding/json"

// Page is one bounded batch of records from a database query, together
// with the continuation cursor for the next batch.
type Page struct {
	// Records are the records in this batch, in API order.
	Records []Record

	// NextCursor is the opaque continuation token for the next page.
	// Empty when HasMore is false.
	NextCursor string

	// HasMore indicates whether another page follows this one.
	HasMore bool
}

// Record is one row-equivalent item in a database: an opaque ID plus a
// mapping of named, typed properties. Property presence is not guaranteed
// to be constant across records.
type Record struct {
	ID             string              `json:"id"`
	CreatedTime    string              `json:"created_time"`
	LastEditedTime string              `json:"last_edited_time"`
	Properties     map[string]Property `json:"properties"`
}

// Property is a variant over the Notion property kinds. Type names the
// kind; exactly one of the value fields is populated. The raw JSON is
// retained so unknown kinds can still be rendered best-effort.
type Property struct {
	Type string `json:"type"`

	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *SelectOption  `json:"select,omitempty"`
	Status         *SelectOption  `json:"status,omitempty"`
	MultiSelect    []SelectOption `json:"multi_select,omitempty"`
	Date           *DateValue     `json:"date,omitempty"`
	People         []User         `json:"people,omitempty"`
	Files          []FileRef      `json:"files,omitempty"`
	Checkbox       *bool          `json:"checkbox,omitempty"`
	URL            *string        `json:"url,omitempty"`
	Email          *string        `json:"email,omitempty"`
	PhoneNumber    *string        `json:"phone_number,omitempty"`
	Relation       []Relation     `json:"relation,omitempty"`
	Formula        *Formula       `json:"formula,omitempty"`
	CreatedTime    *string        `json:"created_time,omitempty"`
	LastEditedTime *string        `json:"last_edited_time,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the property and keeps a copy of the raw JSON for
// kinds this client does not model.
func (p *Property) UnmarshalJSON(data []byte) error {
	type plain Property
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Property(v)
	p.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Raw returns the raw JSON the property was decoded from. It is nil for
// properties constructed in code rather than decoded from a response.
func (p *Property) Raw() json.RawMessage {
	return p.raw
}

// RichText is one fragment of a rich text or title value.
type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is one option of a select, status, or multi-select property.
type SelectOption struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// DateValue is a date or date range. Start and End are ISO-8601 strings;
// End is nil for single dates.
type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// User is a person reference in a people property.
type User struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// FileRef is one attachment in a files property.
type FileRef struct {
	Name string `json:"name"`
}

// Relation is one linked record in a relation property.
type Relation struct {
	ID string `json:"id"`
}

// Formula is the computed result of a formula property. Type names the
// result kind ("string", "number", "boolean", "date").
type Formula struct {
	Type    string     `json:"type"`
	String  *string    `json:"string,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Boolean *bool      `json:"boolean,omitempty"`
	Date    *DateValue `json:"date,omitempty"`
}

// queryRequest is the wire request for a database query page.
type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// queryResponse is the wire response for a database query page.
type queryResponse struct {
	Object     string   `json:"object"`
	Results    []Record `json:"results"`
	NextCursor *string  `json:"next_cursor"`
	HasMore    bool     `json:"has_more"`
}

// errorResponse is the wire shape of a Notion API error body.
type errorResponse struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
