package validators

import (
	"bufio"
	_ "embed"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultPasswordMinLength is the minimum password length used when the
// configuration does not override it.
const DefaultPasswordMinLength = 8

// maxSimilarity is the quick-ratio threshold above which a password is
// considered derived from a user attribute.
const maxSimilarity = 0.7

//go:embed common_passwords.txt
var commonPasswordsFile string

var nonWordRe = regexp.MustCompile(`\W+`)

// UserAttribute is a piece of user data a password must not resemble.
// Name is the human-readable attribute name used in the error message.
type UserAttribute struct {
	Name  string
	Value string
}

// PasswordPolicy checks password strength: minimum length, similarity to
// user attributes, membership in a common-password list and all-digit
// passwords.
type PasswordPolicy struct {
	minLength int
	common    map[string]struct{}
}

// NewPasswordPolicy builds a policy with the given minimum length. A
// non-positive minLength falls back to [DefaultPasswordMinLength].
func NewPasswordPolicy(minLength int) *PasswordPolicy {
	if minLength <= 0 {
		minLength = DefaultPasswordMinLength
	}

	common := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(commonPasswordsFile))
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		common[line] = struct{}{}
	}

	return &PasswordPolicy{minLength: minLength, common: common}
}

// Check returns every policy violation of password. The result is empty for
// an acceptable password.
func (p *PasswordPolicy) Check(password string, attrs ...UserAttribute) []error {
	var errs []error

	if err := similarTo(password, attrs); err != nil {
		errs = append(errs, err)
	}
	if utf8.RuneCountInString(password) < p.minLength {
		errs = append(errs, tooShort(p.minLength))
	}
	if _, ok := p.common[strings.ToLower(strings.TrimSpace(password))]; ok {
		errs = append(errs, ErrPasswordTooCommon)
	}
	if isNumeric(password) {
		errs = append(errs, ErrPasswordEntirelyNumeric)
	}

	return errs
}

func similarTo(password string, attrs []UserAttribute) error {
	password = strings.ToLower(password)
	for _, attr := range attrs {
		if attr.Value == "" {
			continue
		}
		value := strings.ToLower(attr.Value)
		parts := append(nonWordRe.Split(value, -1), value)
		for _, part := range parts {
			if exceedsMaxLengthRatio(password, part) {
				continue
			}
			if quickRatio(password, part) >= maxSimilarity {
				return tooSimilar(attr.Name)
			}
		}
	}
	return nil
}

// exceedsMaxLengthRatio skips comparisons against values so short relative
// to the password that they cannot reach the similarity threshold.
func exceedsMaxLengthRatio(password, value string) bool {
	pwdLen := utf8.RuneCountInString(password)
	valueLen := utf8.RuneCountInString(value)
	bound := maxSimilarity / 2 * float64(pwdLen)
	return pwdLen >= 10*valueLen && float64(valueLen) < bound
}

// quickRatio is an upper bound of the matching-blocks ratio: twice the size
// of the character multiset intersection divided by the total length.
func quickRatio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}

	avail := make(map[rune]int)
	for _, r := range b {
		avail[r]++
	}
	matches := 0
	for _, r := range a {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(total)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
