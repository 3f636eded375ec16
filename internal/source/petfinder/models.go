package petfinder

// RawAnimal is an animal record exactly as the API returned it. No schema is
// enforced beyond the presence of an "id" field, checked by the mapper.
type RawAnimal map[string]any

type tokenResponse struct {
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

// Pagination is the page cursor block of a list response.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type listResponse struct {
	Animals    []RawAnimal `json:"animals"`
	Pagination *Pagination `json:"pagination"`
}
