package shared

import (
	"net/url"
	"regexp"
)

var accountIdRegex = regexp.MustCompile(`^[0-9]{12}$`)

// validate aws account id
func IsValidAccountId(accountId string) bool {
	return accountIdRegex.MatchString(accountId)
}

// validate queue url, an absolute http(s) url with a host and a queue path
func IsValidQueueURL(queueURL string) bool {
	u, err := url.Parse(queueURL)
	if err != nil {
		return false
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return false
	}
	return u.Host != "" && u.Path != "" && u.Path != "/"
}
