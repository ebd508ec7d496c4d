// Package mailer defines the email-sending capability smsgate delivers
// through.
//
// The package only carries the Email value object and the Sender interface.
// Providers live in subpackages:
//
//   - resend: the Resend transactional email API
//   - gmail: the Gmail API with a service account or a refresh token
//
// Implement Sender to plug in another provider:
//
//	type MySender struct{}
//
//	func (s *MySender) Send(ctx context.Context, email *mailer.Email) error {
//		return nil
//	}
package mailer
