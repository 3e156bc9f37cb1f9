// Package pix builds the mock BR-code payload shown on deposit requests.
// The flow is manual: the client pays out of band and the agent confirms.
package pix

import "fmt"

// Payload assembles the copy-and-paste PIX string for the given payout key
// and depositor. The surrounding fields mirror the static BR-code template
// the storefront has always shown; only the key and depositor vary.
func Payload(pixKey, username string) string {
	return fmt.Sprintf(
		"00020126460014BR.GOV.BCB.PIX01%d%s52040000530398654042.005802BR5912DEPOSITO %s6008BRASILIA62070503***63041D3D",
		len(pixKey), pixKey, username,
	)
}
