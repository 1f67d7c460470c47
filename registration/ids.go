package registration

import "fmt"

// Prefixes of the IDs generated during registration
const (
	ArrestPrefix = "ARR"
	ChargePrefix = "CHG"
)

// GenerateID returns the lowest "{prefix}-{NNN}" identifier, counting from 1, that is
// not present in existing. The counter is zero padded to three digits and grows past
// 999 without truncation.
func GenerateID(prefix string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%03d", prefix, counter)
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
	}
}
