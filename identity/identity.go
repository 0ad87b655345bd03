// Package identity models the current user as seen by the token issuing
// flow. The CMS owns authentication; this package only carries the result of
// it for the duration of a request.
package identity

// Account exposes the identity details the claim builder needs. It mirrors
// the account proxy the surrounding CMS hands to every request.
type Account interface {
	// IsAuthenticated reports whether the account belongs to a logged-in user.
	IsAuthenticated() bool

	// Email returns the account email address. Empty for anonymous accounts.
	Email() string

	// UID returns the numeric user ID. Zero for anonymous accounts.
	UID() int64
}

// StaticAccount is a fixed authenticated account, used for wiring and tests.
type StaticAccount struct {
	AccountEmail string
	AccountUID   int64
}

var _ Account = StaticAccount{}

func (a StaticAccount) IsAuthenticated() bool {
	return true
}

func (a StaticAccount) Email() string {
	return a.AccountEmail
}

func (a StaticAccount) UID() int64 {
	return a.AccountUID
}

type anonymousAccount struct{}

func (anonymousAccount) IsAuthenticated() bool { return false }
func (anonymousAccount) Email() string        { return "" }
func (anonymousAccount) UID() int64           { return 0 }

// Anonymous returns the account used for requests without a logged-in user.
func Anonymous() Account {
	return anonymousAccount{}
}
