package domain

// ResolutionStatus is the outcome class of a selector resolution attempt.
type ResolutionStatus string

// Resolution statuses.
const (
	StatusFoundInDB     ResolutionStatus = "found_in_db"
	StatusValidNotInDB  ResolutionStatus = "valid_but_not_in_db"
	StatusMultipleMatch ResolutionStatus = "multiple_matches"
	StatusNotFound      ResolutionStatus = "not_found"
	StatusInvalidChoice ResolutionStatus = "invalid_choice"
)

// ResolutionSource says where a resolved selector came from.
type ResolutionSource string

// Resolution sources.
const (
	SourceDatabase     ResolutionSource = "database"
	SourceUserProvided ResolutionSource = "user_provided"
	SourceNone         ResolutionSource = "none"
)

// MatchType classifies how strongly a catalog entry matched a description.
type MatchType string

// Match types.
const (
	MatchExact   MatchType = "exact"
	MatchPartial MatchType = "partial"
	MatchKeyword MatchType = "keyword"
)

// TurnRole is the author of a conversation turn.
type TurnRole string

// Turn roles.
const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// ConversationTurn is one structured message in the conversation history.
// OfferedOptions is populated on assistant turns that asked the user to pick
// from numbered selector candidates, so the resolver does not have to re-parse
// the message text.
type ConversationTurn struct {
	Role           TurnRole `json:"role"`
	Content        string   `json:"content"`
	OfferedOptions []string `json:"offered_options,omitempty"`
}

// ResolutionRequest asks the resolver to turn an element description into a
// catalog-backed selector.
type ResolutionRequest struct {
	ElementDescription string   `json:"element_description"`
	PageType           PageType `json:"page_type"`
	BrandID            int      `json:"brand_id"`
	// UserMessage is the raw text of the current user message, if any.
	UserMessage string `json:"user_message,omitempty"`
	// Turns is the structured conversation history, most recent last.
	// Preferred over Context when present.
	Turns []ConversationTurn `json:"turns,omitempty"`
	// Context is the flat prior-message history, most recent last. Kept for
	// callers that only have raw strings.
	Context []string `json:"conversation_context,omitempty"`
}

// SelectorMatch is one ranked catalog candidate.
type SelectorMatch struct {
	Selector   *Selector `json:"selector"`
	Confidence float64   `json:"confidence"`
	MatchType  MatchType `json:"match_type"`
}

// ResolutionResult is the structured outcome of one resolution attempt.
type ResolutionResult struct {
	Status           ResolutionStatus `json:"status"`
	IsValid          bool             `json:"is_valid"`
	ResolvedSelector string           `json:"resolved_selector,omitempty"`
	Source           ResolutionSource `json:"source"`
	RequiresReview   bool             `json:"requires_review"`
	Matches          []SelectorMatch  `json:"matches"`
	Message          string           `json:"message,omitempty"`
}
