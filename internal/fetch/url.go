package fetch

import (
	"fmt"
	"net/url"
	"strings"
)

// AppendQuery appends query parameters to requestURL, preserving both
// any existing raw query and the given parameter order.
func AppendQuery(requestURL string, params []Header) (string, error) {
	if len(params) == 0 {
		return requestURL, nil
	}

	parsed, err := url.Parse(requestURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}

	ordered := make([]string, 0, len(params))
	if parsed.RawQuery != "" {
		ordered = append(ordered, strings.Split(parsed.RawQuery, "&")...)
	}

	for _, param := range params {
		name := strings.TrimSpace(param.Name)
		if name == "" {
			continue
		}
		ordered = append(ordered, url.QueryEscape(name)+"="+url.QueryEscape(param.Value))
	}

	parsed.RawQuery = strings.Join(ordered, "&")
	return parsed.String(), nil
}
