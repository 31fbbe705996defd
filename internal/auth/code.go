package auth

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ValidPhone reports whether s is an 11-digit mobile number starting with 1
// and a second digit of 3-9.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// CodeService is the SMS gateway collaborator. Send issues a verification
// code for the phone number; Verify checks a code the user typed back.
type CodeService interface {
	Send(phone string) (string, error)
	Verify(phone, code string) bool
}

// StaticCodeService issues a fixed code and logs it instead of sending SMS.
// It stands in for a real gateway during development.
type StaticCodeService struct {
	Code string
}

func NewStaticCodeService(code string) *StaticCodeService {
	return &StaticCodeService{Code: code}
}

func (s *StaticCodeService) Send(phone string) (string, error) {
	if !ValidPhone(phone) {
		return "", fmt.Errorf("invalid phone number: %s", phone)
	}
	logrus.WithField("phone", phone).Info("verification code issued")
	return s.Code, nil
}

func (s *StaticCodeService) Verify(phone, code string) bool {
	return code != "" && code == s.Code
}
