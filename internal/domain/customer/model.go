package customer

// Stage is one of the six ordered pipeline phases.
type Stage string

const (
	StageTouchBase Stage = "TouchBase"
	StageQualify   Stage = "Qualify"
	StagePropose   Stage = "Propose"
	StageDevelop   Stage = "Develop"
	StageClose     Stage = "Close"
	StageFulfill   Stage = "Fulfill"
)

// Stages lists the pipeline stages in progression order.
var Stages = []Stage{
	StageTouchBase,
	StageQualify,
	StagePropose,
	StageDevelop,
	StageClose,
	StageFulfill,
}

// Status is a customer's position: a pipeline stage or the sleeping bypass.
type Status string

// StatusSleeping pauses engagement outside the pipeline. Sleeping customers
// are exempt from staleness accounting and can be woken back to the latest
// stage they reached.
const StatusSleeping Status = "Sleeping"

// StageIndex returns a stage's position in the pipeline, or -1 when s is not
// a pipeline stage.
func StageIndex(s Stage) int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Stage returns the pipeline stage a status maps to, if any.
func (s Status) Stage() (Stage, bool) {
	if idx := StageIndex(Stage(s)); idx >= 0 {
		return Stage(s), true
	}
	return "", false
}

// Customer is one row of the main sheet. Stage timestamps stay as raw cell
// text so a record round-trips through the sheet byte for byte; they are
// parsed only where a time value is needed.
type Customer struct {
	ID                string           `json:"customer_id"`
	CompanyName       string           `json:"company_name"`
	Address           string           `json:"address"`
	Contact           string           `json:"contact"`
	Email             string           `json:"email"`
	Business          string           `json:"business"`
	PreferredLocation string           `json:"preferred_location"`
	Channel           string           `json:"channel"`
	Requirements      string           `json:"requirements"`
	SalesNotes        string           `json:"sales_notes"`
	Status            Status           `json:"current_status"`
	StageTimes        map[Stage]string `json:"stage_times"`
	Salesperson       string           `json:"salesperson"`
}

// StageTime returns the raw timestamp cell for a stage, "" when unset.
func (c *Customer) StageTime(s Stage) string {
	if c.StageTimes == nil {
		return ""
	}
	return c.StageTimes[s]
}

// SetStageTime records a stage timestamp cell.
func (c *Customer) SetStageTime(s Stage, value string) {
	if c.StageTimes == nil {
		c.StageTimes = make(map[Stage]string, len(Stages))
	}
	c.StageTimes[s] = value
}

// Completed reports whether the customer reached the terminal stage.
func (c *Customer) Completed() bool {
	return c.Status == Status(StageFulfill)
}
