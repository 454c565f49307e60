package utils

import "regexp"

// MinPasswordLen is the minimum accepted password length at registration.
const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
