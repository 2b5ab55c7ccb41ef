package geocoder

import (
	"context"
	"sync"

	"github.com/travigo/modeadvisor/pkg/ctdf"
)

type stubProvider struct {
	respond func(query SearchQuery) ([]Candidate, error)

	mutex   sync.Mutex
	queries []SearchQuery
}

func (s *stubProvider) Search(ctx context.Context, query SearchQuery) ([]Candidate, error) {
	s.mutex.Lock()
	s.queries = append(s.queries, query)
	s.mutex.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return s.respond(query)
}

func (s *stubProvider) Queries() []SearchQuery {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]SearchQuery{}, s.queries...)
}

// answers returns a responder matching exact query text, optionally only inside a view box
func answers(unbiased map[string]ctdf.Location, biased map[string]ctdf.Location) func(query SearchQuery) ([]Candidate, error) {
	return func(query SearchQuery) ([]Candidate, error) {
		table := unbiased
		if query.ViewBox != nil {
			table = biased
		}

		location, exists := table[query.Text]
		if !exists || (query.ViewBox != nil && !query.ViewBox.Contains(location)) {
			return []Candidate{}, nil
		}

		return []Candidate{{Location: location, DisplayName: query.Text, State: "Karnataka"}}, nil
	}
}
