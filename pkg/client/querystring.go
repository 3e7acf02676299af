package client

import "net/url"

// addQueryParams merges params into the query string of path. Pre-existing
// parameters survive the merge; a param with the same key overrides.
func addQueryParams(path string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return path, nil
	}
	u, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	query := u.Query()
	for key, value := range params {
		query.Set(key, value)
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}
