// Package intent classifies a normalized chat message into one of the reply
// categories the bot knows how to answer.
package intent

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the kind of reply a message gets.
type Category int

const (
	// Unknown messages are passed to the fallback responder.
	Unknown Category = iota
	// Greeting messages get the fixed greeting.
	Greeting
	// Definition messages ask what a water-quality term means.
	Definition
	// DefinitionUnknown asks for a definition of a term the bot does not know.
	DefinitionUnknown
	// DataQuery messages mention a known location.
	DataQuery
)

// String returns the label used in logs and metrics.
func (c Category) String() string {
	switch c {
	case Greeting:
		return "greeting"
	case Definition:
		return "definition"
	case DefinitionUnknown:
		return "definition_unknown"
	case DataQuery:
		return "data_query"
	default:
		return "unknown"
	}
}

// Term is a water-quality parameter the bot can define.
type Term string

// Definable terms, in match priority order.
const (
	TermTDS Term = "tds"
	TermBOD Term = "bod"
	TermCOD Term = "cod"
	TermPH  Term = "ph"
)

// QueryType selects which part of a record a data query asks for.
type QueryType string

// Query types.
const (
	QueryLevel   QueryType = "level"
	QueryQuality QueryType = "quality"
	QueryStatus  QueryType = "status"
	QueryFull    QueryType = "full"
)

// Result is the outcome of classification. Term is set for Definition;
// Location and QueryType are set for DataQuery.
type Result struct {
	Category  Category
	Term      Term
	Location  string
	QueryType QueryType
}

// Normalize lowercases raw (Unicode aware) and trims surrounding whitespace.
func Normalize(raw string) string {
	return strings.TrimSpace(cases.Lower(language.Und).String(raw))
}
