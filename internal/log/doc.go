// Package log provides the structured logger used across leaddeck, built on
// log/slog with a redacting handler in front of the output handler.
//
// Lead files carry contact details for real brands and the people behind
// them. The RedactHandler masks those before a record is written:
//   - attributes whose key names contact or credential data
//     (email, phone, contact, password, token, secret)
//   - string values that look like an email address or a phone number
//   - bearer and basic authorization values
//
// URLs, lead IDs and store digests pass through unchanged.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Info("lead imported", "id", lead.ID, "email", "hello@brand.in")
//	// email=***REDACTED***
package log
