// Package utils contains utility functions for the contact daemon.
package utils

import (
	"fmt"
)

// DisplayLogo prints the contactd banner with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▀▀░█▀█░█▀█░▀█▀░█▀█░█▀▀░▀█▀░█▀▄░
 ░█░░░█░█░█░█░░█░░█▀█░█░░░░█░░█░█░
 ░▀▀▀░▀▀▀░▀░▀░░▀░░▀░▀░▀▀▀░░▀░░▀▀░░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n contactd v%s - Contact form submission service\n", version)
	fmt.Println()
}
