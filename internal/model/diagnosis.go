package model

import "errors"

// ErrDuplicateCode is returned when a code is already in the selection.
var ErrDuplicateCode = errors.New("CIE-10 code already added")

// DiagnosisSelection is the ordered list of CIE-10 codes picked while a
// consultation is being written. Codes are unique within the list.
type DiagnosisSelection struct {
	Codes  []Cie10Code `json:"codes"`
	Notice string      `json:"notice,omitempty"`
}

// Add appends code unless it is already selected. A rejected add leaves the
// list untouched and sets Notice; an accepted one clears it.
func (s *DiagnosisSelection) Add(code Cie10Code) error {
	if s.Contains(code.Code) {
		s.Notice = ErrDuplicateCode.Error()
		return ErrDuplicateCode
	}
	s.Codes = append(s.Codes, code)
	s.Notice = ""
	return nil
}

func (s *DiagnosisSelection) Remove(code string) bool {
	for i, c := range s.Codes {
		if c.Code == code {
			s.Codes = append(s.Codes[:i:i], s.Codes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *DiagnosisSelection) Contains(code string) bool {
	for _, c := range s.Codes {
		if c.Code == code {
			return true
		}
	}
	return false
}

func (s *DiagnosisSelection) Len() int {
	return len(s.Codes)
}
