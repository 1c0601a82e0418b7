package customer

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`\+?\d[\d\s\-]{6,}`)
	emailPattern = regexp.MustCompile(`[^@\s]+@[^@\s]+\.[^@\s]+`)
)

// ValidateCreateInput validates fields required to create a customer. Company
// name, salesperson, and channel are required; contact is optional but must
// look like a name, phone number, or email when present.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.CompanyName) == "" {
		return ErrMissingCompanyName
	}
	if strings.TrimSpace(req.Salesperson) == "" {
		return ErrMissingSalesperson
	}
	if strings.TrimSpace(req.Channel) == "" {
		return ErrMissingChannel
	}
	if contact := strings.TrimSpace(req.Contact); contact != "" && !validContact(contact) {
		return ErrInvalidContact
	}
	return nil
}

func validContact(contact string) bool {
	if phonePattern.MatchString(contact) {
		return true
	}
	if emailPattern.MatchString(contact) {
		return true
	}
	return len([]rune(contact)) >= 2
}
