package models

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	AccountID string `json:"account_id"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

// ResolveOutcome says how an identity was mapped to a mentor profile.
type ResolveOutcome string

const (
	ResolveLinked  ResolveOutcome = "linked"
	ResolveClaimed ResolveOutcome = "claimed"
	ResolveCreated ResolveOutcome = "created"
)

// ResolveResult is the identity resolver's answer: the mentor row belonging
// to the account, plus how it was obtained.
type ResolveResult struct {
	Mentor  *Mentor        `json:"mentor"`
	Outcome ResolveOutcome `json:"outcome"`
}
