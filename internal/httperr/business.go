package httperr

import "errors"

// BusinessError is a rule violation the user is told about.
// Message is the fixed display string shown in the feedback area.
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusinessMsg(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness unwraps err into a BusinessError when it is one.
func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
