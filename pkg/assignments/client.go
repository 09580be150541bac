// Package assignments talks to the external assignment-tracking API and
// flattens its paginated feed into reconciliation candidates.
package assignments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"planner-backend/internal/planner/domain"
	"planner-backend/internal/planner/usecase"
)

const defaultPerPage = 50

// Client fetches assignments with a static bearer token. It implements
// usecase.CandidateSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a feed client for the given API base URL and token
func NewClient(baseURL, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: oauth2.NewClient(context.Background(), src),
	}
}

// assignment mirrors the feed's JSON shape. IDs are numeric upstream.
type assignment struct {
	ID            json.Number `json:"id"`
	Name          string      `json:"name"`
	DueAt         *time.Time  `json:"due_at"`
	CreatedAt     *time.Time  `json:"created_at"`
	LockedForUser bool        `json:"locked_for_user"`
}

// FetchCandidates retrieves every page of the assignment feed and maps it to
// candidates, dropping records the user cannot act on. Any transport or
// decode failure aborts the whole fetch.
func (c *Client) FetchCandidates(ctx context.Context) ([]usecase.Candidate, error) {
	url := fmt.Sprintf("%s/api/v1/users/self/assignments?per_page=%d", c.baseURL, defaultPerPage)

	var candidates []usecase.Candidate
	for url != "" {
		page, next, err := c.fetchPage(ctx, url)
		if err != nil {
			return nil, err
		}
		for _, a := range page {
			if a.LockedForUser {
				continue
			}
			candidates = append(candidates, usecase.Candidate{
				ExternalID: a.ID.String(),
				Title:      a.Name,
				DueAt:      a.DueAt,
				CreatedAt:  a.CreatedAt,
			})
		}
		url = next
	}
	return candidates, nil
}

func (c *Client) fetchPage(ctx context.Context, url string) ([]assignment, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: feed returned %s", domain.ErrUpstream, resp.Status)
	}

	var page []assignment
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("%w: decode feed page: %v", domain.ErrUpstream, err)
	}
	return page, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" target from an RFC 5988 Link header.
// Returns "" on the last page.
func nextPageURL(header string) string {
	for _, part := range strings.Split(header, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}
		target := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		for _, param := range sections[1:] {
			if strings.TrimSpace(param) == `rel="next"` {
				return target
			}
		}
	}
	return ""
}
