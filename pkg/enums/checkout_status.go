package enums

import "fmt"

// CheckoutStatus tracks the lifecycle of a checkout record.
type CheckoutStatus string

const (
	CheckoutStatusProcessing CheckoutStatus = "processing"
)

var validCheckoutStatuses = []CheckoutStatus{
	CheckoutStatusProcessing,
}

// String implements fmt.Stringer.
func (c CheckoutStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStatus.
func (c CheckoutStatus) IsValid() bool {
	for _, candidate := range validCheckoutStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutStatus converts raw input into a CheckoutStatus.
func ParseCheckoutStatus(value string) (CheckoutStatus, error) {
	for _, candidate := range validCheckoutStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout status %q", value)
}
