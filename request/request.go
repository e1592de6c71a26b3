package request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
)

// GetJSON does an HTTP GET on the given URL with the given query and headers,
// then decodes the response body as JSON into out.
func GetJSON(ctx context.Context, baseURL string, query url.Values, header http.Header, out any) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("bad url '%s': %w", baseURL, err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching '%s': %w", baseURL, err)
	}
	defer resp.Body.Close()

	if err := Error(resp); err != nil {
		return fmt.Errorf("unexpected status from '%s': %w", baseURL, err)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("error decoding json from '%s': %w", baseURL, err)
	}

	return nil
}

// Error checks the given http response for an error code, and, if one is
// present, reads the body and returns a friendly error.
func Error(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bs, err := httputil.DumpResponse(resp, true)
		if err != nil {
			return fmt.Errorf("http status code %d; error decoding body: %w", resp.StatusCode, err)
		} else {
			return fmt.Errorf("http status code %d:\n%s", resp.StatusCode, string(bs))
		}
	}
	return nil
}
