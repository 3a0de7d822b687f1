package narrative

// Scope describes which side of the organizational boundary a
// conversation lives on.
type Scope string

const (
	// ScopeInternal is a conversation among characters of a single
	// organization.
	ScopeInternal Scope = "internal"

	// ScopeExternal is a conversation spanning two or more
	// organizations.
	ScopeExternal Scope = "external"
)

// Relevance is the coarse legal-discovery significance of a thread.
type Relevance string

const (
	// RelevanceResponsive marks a thread that matters to the simulated
	// matter and would be produced in review.
	RelevanceResponsive Relevance = "responsive"

	// RelevanceNonResponsive marks background noise.
	RelevanceNonResponsive Relevance = "non_responsive"
)
