package customer

import "errors"

var (
	// ErrCustomerNotFound indicates the customer doesn't exist in the sheet.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrMissingCompanyName indicates the required company name is empty.
	ErrMissingCompanyName = errors.New("company name is required")
	// ErrMissingSalesperson indicates the required salesperson is empty.
	ErrMissingSalesperson = errors.New("salesperson is required")
	// ErrMissingChannel indicates the required channel is empty.
	ErrMissingChannel = errors.New("channel is required")
	// ErrInvalidContact indicates the contact has no usable name, phone, or email.
	ErrInvalidContact = errors.New("contact must include a name, phone number, or email")
	// ErrNoNextStage indicates an advance from the terminal stage or while sleeping.
	ErrNoNextStage = errors.New("no next stage available")
	// ErrAlreadySleeping indicates a sleep request for a sleeping customer.
	ErrAlreadySleeping = errors.New("customer is already sleeping")
	// ErrNotSleeping indicates a wake request for a customer that isn't sleeping.
	ErrNotSleeping = errors.New("customer is not sleeping")
)
