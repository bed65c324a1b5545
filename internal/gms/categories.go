package gms

// Category pairs the short code used as the business key with its
// display name.
type Category struct {
	Num  string
	Name string
}

// Categories in the order they are offered when filing or registering.
var Categories = []Category{
	{"SAL", "Salary & Wage Issues"},
	{"HR", "Human Resource Issues"},
	{"SAF", "Workplace Safety"},
	{"FIN", "Statutory Benefits"},
	{"CON", "Contractual Issues"},
	{"TRF", "Transfer Issues"},
	{"IT", "Data Privacy Issues"},
}

// topicsByCategory is the fixed client-held mapping that drives the
// cascading topic select on the filing form.
var topicsByCategory = map[string][]string{
	"SAL": {"Non-payment / Delay / Deduction", "Bonus Issues", "Minimum Wages", "Overtime Issues", "Excess Working Hours"},
	"HR":  {"Leave Rejection", "Workplace Harassment", "Sexual Harassment", "Discrimination", "Promotion Issues", "Illegal Termination", "Retrenchment / Layoff"},
	"SAF": {"Unsafe Working Conditions", "Workplace Injuries"},
	"FIN": {"Provident Fund Issues", "ESI Issues", "Gratuity Issues"},
	"CON": {"Agreement Violation"},
	"TRF": {"Forced Transfer"},
	"IT":  {"Data Misuse"},
}

// Topics returns the topic list for a category code, empty for unknown
// codes.
func Topics(categoryNum string) []string {
	return topicsByCategory[categoryNum]
}

// DefaultTopic is the topic a freshly selected category falls back to: a
// changed category must never leave a stale topic from another category
// selected.
func DefaultTopic(categoryNum string) string {
	ts := topicsByCategory[categoryNum]
	if len(ts) == 0 {
		return ""
	}
	return ts[0]
}

// CategoryName resolves a code to its display name, returning the code
// itself when unknown.
func CategoryName(num string) string {
	for _, c := range Categories {
		if c.Num == num {
			return c.Name
		}
	}
	return num
}
