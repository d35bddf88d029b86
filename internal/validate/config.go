package validate

import (
	"fmt"
	"time"
)

// ValidatePortRange validates that a port number is within 1-65535.
// Port 0 is rejected: the site front end and the CLI need a predictable address.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is positive (> 0).
// Used for the janitor sweep interval, shutdown timeout and CLI timeout.
func ValidatePositiveDuration(d time.Duration, name string) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
