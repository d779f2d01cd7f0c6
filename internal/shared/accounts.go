package shared

import (
	"errors"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseAccountList decodes a bracketed list literal such as
// ['111111111111', "222222222222", 333333333333]. The literal is read as a
// yaml flow sequence. Blank input is an empty list.
func ParseAccountList(literal string) ([]string, error) {
	s := strings.TrimSpace(literal)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, errors.New("expected a bracketed list")
	}

	var accounts []string
	if err := yaml.Unmarshal([]byte(s), &accounts); err != nil {
		return nil, errors.New("malformed account list : [" + err.Error() + "]")
	}
	for i, account := range accounts {
		if strings.TrimSpace(account) == "" {
			return nil, errors.New("empty entry at position " + strconv.Itoa(i+1))
		}
	}
	if accounts == nil {
		accounts = []string{}
	}
	return accounts, nil
}

// InvalidAccountIds returns the entries that are not 12-digit account ids.
func InvalidAccountIds(accounts []string) []string {
	var invalid []string
	for _, account := range accounts {
		if !IsValidAccountId(account) {
			invalid = append(invalid, account)
		}
	}
	return invalid
}
