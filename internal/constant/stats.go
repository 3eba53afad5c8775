package constant

const (
	// TopMonthlyNumbers is how many entries a monthly frequency result is truncated to.
	TopMonthlyNumbers = 6

	// DefaultHistoryLimit is the recent history window size used when the caller
	// does not specify one.
	DefaultHistoryLimit = 20
)
