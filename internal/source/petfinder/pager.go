package petfinder

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"shelter_sync/internal/domain"
)

// AnimalPager steps through /animals pages in ascending order. Each call to
// Next fetches one page; iteration ends when the server reports
// current_page >= total_pages, or after the first page when the response
// carries no pagination block. A pager is single-use; call Animals again to
// restart from page 1.
type AnimalPager struct {
	client *Client
	params url.Values
	page   int
	done   bool
}

// Animals returns a pager over /animals for the given query parameters.
// The page size defaults to the client's configured limit unless params
// already carries one.
func (c *Client) Animals(params url.Values) *AnimalPager {
	q := url.Values{}
	for k, vs := range params {
		q[k] = append([]string(nil), vs...)
	}
	if q.Get("limit") == "" {
		q.Set("limit", strconv.Itoa(c.pageSize))
	}
	return &AnimalPager{client: c, params: q, page: 1}
}

// Next fetches the next page of raw records. more is false once the page
// cursor is exhausted; a drained pager keeps returning (nil, false, nil).
func (p *AnimalPager) Next(ctx context.Context) (batch []RawAnimal, more bool, err error) {
	if p.done {
		return nil, false, nil
	}

	p.params.Set("page", strconv.Itoa(p.page))

	var resp listResponse
	if err := p.client.get(ctx, "/animals", p.params, &resp); err != nil {
		return nil, false, fmt.Errorf("fetch page %d: %w", p.page, err)
	}

	p.client.logger.Debug("fetched page", "page", p.page, "animals", len(resp.Animals))

	// No pagination metadata means the first page is the only page.
	if resp.Pagination == nil {
		p.done = true
		return resp.Animals, false, nil
	}

	// A pagination block without current_page counts as the page we asked
	// for, so the cursor still advances.
	cur := resp.Pagination.CurrentPage
	if cur == 0 {
		cur = p.page
	}
	if cur >= resp.Pagination.TotalPages {
		p.done = true
		return resp.Animals, false, nil
	}

	p.page = cur + 1
	return resp.Animals, true, nil
}

// ListAnimals drains a pager into memory. The full record set for one run is
// materialized before anything is loaded.
func (c *Client) ListAnimals(ctx context.Context, params url.Values) ([]RawAnimal, error) {
	pager := c.Animals(params)

	var all []RawAnimal
	for {
		batch, more, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if !more {
			return all, nil
		}
	}
}

// FetchRows lists all animals matching the configured filters and maps them
// to domain rows. A record that fails to map aborts the whole fetch.
func (c *Client) FetchRows(ctx context.Context) ([]domain.AnimalRow, error) {
	raw, err := c.ListAnimals(ctx, c.filters.Values())
	if err != nil {
		return nil, err
	}

	rows := make([]domain.AnimalRow, 0, len(raw))
	for _, a := range raw {
		row, err := MapAnimal(a)
		if err != nil {
			return nil, fmt.Errorf("map animal: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
