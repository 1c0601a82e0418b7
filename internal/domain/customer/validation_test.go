package customer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jqzhang/crmsheet/internal/domain/customer"
)

func validRequest() customer.CreateRequest {
	return customer.CreateRequest{
		CompanyName: "Acme Corp",
		Salesperson: "alice",
		Channel:     "referral",
	}
}

func TestValidateCreateInput(t *testing.T) {
	require.NoError(t, customer.ValidateCreateInput(validRequest()))
}

func TestValidateCreateInput_MissingFields(t *testing.T) {
	req := validRequest()
	req.CompanyName = "   "
	require.ErrorIs(t, customer.ValidateCreateInput(req), customer.ErrMissingCompanyName)

	req = validRequest()
	req.Salesperson = ""
	require.ErrorIs(t, customer.ValidateCreateInput(req), customer.ErrMissingSalesperson)

	req = validRequest()
	req.Channel = ""
	require.ErrorIs(t, customer.ValidateCreateInput(req), customer.ErrMissingChannel)
}

func TestValidateCreateInput_Contact(t *testing.T) {
	valid := []string{
		"",
		"+1 415-555-0100",
		"4155550100",
		"sales@acme.example",
		"Jane Doe",
		"张伟",
	}
	for _, contact := range valid {
		req := validRequest()
		req.Contact = contact
		require.NoError(t, customer.ValidateCreateInput(req), "contact %q", contact)
	}

	req := validRequest()
	req.Contact = "X"
	require.ErrorIs(t, customer.ValidateCreateInput(req), customer.ErrInvalidContact)
}
