package intent

import "github.com/garyellow/groundwater-bot-go/internal/stringutil"

// Keyword sets. Matching is substring containment on normalized text.
var (
	greetingTokens = []string{"hi", "hello", "hey"}

	definitionTriggers = []string{"what is", "define", "meaning of", "what does"}
	definableTerms     = []string{string(TermTDS), string(TermBOD), string(TermCOD), string(TermPH)}

	levelTokens   = []string{"level", "water table"}
	qualityTokens = []string{"ph", "tds", "cod", "bod", "quality"}
	statusTokens  = []string{"status", "irrigation", "drinking", "recommended"}
)

// LocationResolver maps normalized text to a canonical location key.
type LocationResolver interface {
	Resolve(text string) (string, bool)
}

// rule reports a Result when it applies to the text.
type rule func(text string) (Result, bool)

// Classifier evaluates its rules in priority order; the first match wins.
type Classifier struct {
	rules []rule
}

// NewClassifier builds the rule chain: greeting, definition, data query.
// Anything else is Unknown.
func NewClassifier(resolver LocationResolver) *Classifier {
	return &Classifier{
		rules: []rule{
			matchGreeting,
			matchDefinition,
			dataQueryRule(resolver),
		},
	}
}

// Classify picks the category for an already normalized message.
func (c *Classifier) Classify(text string) Result {
	for _, r := range c.rules {
		if res, ok := r(text); ok {
			return res
		}
	}
	return Result{Category: Unknown}
}

func matchGreeting(text string) (Result, bool) {
	if stringutil.ContainsAny(text, greetingTokens...) {
		return Result{Category: Greeting}, true
	}
	return Result{}, false
}

func matchDefinition(text string) (Result, bool) {
	if !stringutil.ContainsAny(text, definitionTriggers...) {
		return Result{}, false
	}
	if term, ok := stringutil.FirstContained(text, definableTerms...); ok {
		return Result{Category: Definition, Term: Term(term)}, true
	}
	return Result{Category: DefinitionUnknown}, true
}

func dataQueryRule(resolver LocationResolver) rule {
	return func(text string) (Result, bool) {
		if resolver == nil {
			return Result{}, false
		}
		location, ok := resolver.Resolve(text)
		if !ok {
			return Result{}, false
		}
		return Result{Category: DataQuery, Location: location, QueryType: DetectQueryType(text)}, true
	}
}

// DetectQueryType checks level, then quality, then status keywords and
// defaults to a full report.
func DetectQueryType(text string) QueryType {
	switch {
	case stringutil.ContainsAny(text, levelTokens...):
		return QueryLevel
	case stringutil.ContainsAny(text, qualityTokens...):
		return QueryQuality
	case stringutil.ContainsAny(text, statusTokens...):
		return QueryStatus
	default:
		return QueryFull
	}
}
