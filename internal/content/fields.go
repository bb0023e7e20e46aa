package content

import (
	"strconv"
	"strings"
	"unicode"
)

// Fields is a request payload flattened to strings. A key that is present
// with an empty value differs from an absent key.
type Fields map[string]string

func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f Fields) Get(key string) string {
	return f[key]
}

// Filled reports whether key is present with non-blank text.
func (f Fields) Filled(key string) bool {
	return strings.TrimSpace(f[key]) != ""
}

// ParseInt reads a leading base-10 integer the way HTML form inputs are
// usually interpreted: surrounding blanks and any trailing garbage are ignored.
func ParseInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFloat reads a leading decimal number, ignoring trailing text.
func ParseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	seenDigit, seenDot := false, false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			seenDigit = true
		} else if c == '.' && !seenDot {
			seenDot = true
		} else {
			break
		}
		end++
	}
	if !seenDigit {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Checked reports whether a checkbox-style field was ticked.
func Checked(f Fields, key string) bool {
	v, ok := f[key]
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "off", "no":
		return false
	}
	return true
}

// SplitList splits a comma separated value, dropping blank items.
func SplitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimFunc(part, unicode.IsSpace)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func optString(f Fields, key string) *string {
	v, ok := f[key]
	if !ok {
		return nil
	}
	return &v
}

func optFilled(f Fields, key string) *string {
	if !f.Filled(key) {
		return nil
	}
	v := f[key]
	return &v
}

func optTrimmed(f Fields, key string) *string {
	v, ok := f[key]
	if !ok {
		return nil
	}
	v = strings.TrimSpace(v)
	return &v
}

func optInt(f Fields, key string) *int {
	v, ok := f[key]
	if !ok {
		return nil
	}
	n, ok := ParseInt(v)
	if !ok {
		return nil
	}
	return &n
}

func optFloat(f Fields, key string) *float64 {
	v, ok := f[key]
	if !ok {
		return nil
	}
	n, ok := ParseFloat(v)
	if !ok {
		return nil
	}
	return &n
}

func optBool(f Fields, key string) *bool {
	v, ok := f[key]
	if !ok {
		return nil
	}
	b := v == "true"
	return &b
}

func setString(dst *string, p *string) {
	if p != nil {
		*dst = *p
	}
}

func setInt(dst *int, p *int) {
	if p != nil {
		*dst = *p
	}
}

func setBool(dst *bool, p *bool) {
	if p != nil {
		*dst = *p
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
