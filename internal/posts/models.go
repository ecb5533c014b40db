package posts

import "context"

// Column names read from each store row.
const (
	FieldTitle    = "Title"
	FieldURL      = "URL"
	FieldCategory = "Category"
	FieldSource   = "Source"
	FieldDate     = "Date"
)

// Defaults substituted for absent optional columns.
const (
	CategoryAll   = "All"
	UnknownSource = "Unknown"
	DateLayout    = "2006-01-02"
)

// Item is one curated link as served to the view.
type Item struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Source   string `json:"source"`
	Date     string `json:"date"`
}

// Record is a raw store row: a stable id plus fields keyed by column name.
type Record struct {
	ID     string
	Fields map[string]any
}

// Query asks a store for every row of a table in a given order.
type Query struct {
	Table      string
	SortField  string
	Descending bool
}

// Store lists rows from an external tabular source.
type Store interface {
	ListRecords(ctx context.Context, q Query) ([]Record, error)
}

// ErrorKind classifies why a fetch produced no items.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrConfig
	ErrUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrConfig:
		return "config"
	case ErrUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Result is the outcome of a fetch. Items is never nil; Message is set
// whenever Kind is not ErrNone.
type Result struct {
	Items   []Item
	Kind    ErrorKind
	Message string
}

// Failed reports whether the result carries an error descriptor.
func (r Result) Failed() bool {
	return r.Kind != ErrNone
}

// Response is the JSON body of the posts endpoint.
type Response struct {
	Error string `json:"error,omitempty"`
	Posts []Item `json:"posts"`
}

// Response converts the result into its wire form.
func (r Result) Response() Response {
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	return Response{Error: r.Message, Posts: items}
}
