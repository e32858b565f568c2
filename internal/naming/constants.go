package naming

// MaxSuffixProbe is the highest numeric suffix tried before falling back to a
// timestamp. Candidates run "name 2" through "name 100".
const MaxSuffixProbe = 100

// FirstSuffix is the first numeric suffix probed for a taken name.
const FirstSuffix = 2

// Error context messages
const (
	ErrContextCheckName = "failed to check name availability"
)
