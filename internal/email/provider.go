package email

// Provider sends the account lifecycle emails. Delivery failures are the
// caller's problem only insofar as logging them; no mutation waits on or
// fails because of a mail error.
type Provider interface {
	SendVerification(to, token string) error
	SendPasswordReset(to, token string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string

	// BaseURL is the public link prefix embedded in verify/reset emails.
	BaseURL string
}
