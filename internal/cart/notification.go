package cart

// Severity tags a notification's intent. Mapping a severity to concrete
// styling is the presentation layer's job.
type Severity string

const (
	SeverityNeutral Severity = "neutral"
	SeveritySuccess Severity = "success"
	SeverityAccent  Severity = "accent"
	SeverityGold    Severity = "gold"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a transient message for the presentation layer. It stays
// current until explicitly dismissed.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
