package smsgate

import "fmt"

// NANPValidator accepts ten-digit North American numbers whose area code
// and exchange do not start with 0 or 1.
func NANPValidator(phoneNumber int64) error {
	if phoneNumber < 2_000_000_000 || phoneNumber > 9_999_999_999 {
		return fmt.Errorf("%w: %d is not a 10-digit NANP number", ErrInvalidPhoneNumber, phoneNumber)
	}
	if exchange := phoneNumber / 10_000 % 1000; exchange < 200 {
		return fmt.Errorf("%w: exchange %03d of %d", ErrInvalidPhoneNumber, exchange, phoneNumber)
	}
	return nil
}
