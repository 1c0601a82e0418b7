package customer

// ListOptions provides filtering options for listing customers.
type ListOptions struct {
	// Keyword matches company name, customer id, or contact, case-insensitively.
	Keyword string
	// Statuses restricts to the given statuses. When empty, every status but
	// Sleeping is included: sleeping customers are hidden unless asked for.
	Statuses []Status
	// Salespeople restricts to the given assigned salespeople.
	Salespeople []string
	// Channels restricts to the given acquisition channels.
	Channels []string
	// OnlyOpen excludes customers that reached the terminal stage.
	OnlyOpen bool
}
