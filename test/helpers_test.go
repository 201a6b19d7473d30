package test

import (
	"encoding/json"
	"os"

	"github.com/corey/strsearch/internal/domain/search"
)

// matchCase is one fixture from fixtures/cases.json.
type matchCase struct {
	Name    string `json:"name"`
	Text    string `json:"text"`
	Pattern string `json:"pattern"`
	Want    int    `json:"want"`
}

func loadMatchCases(path string) ([]matchCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cases []matchCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// engines returns one engine per hash strategy.
func engines() (map[search.HashStrategy]*search.Engine, error) {
	out := make(map[search.HashStrategy]*search.Engine)
	for _, s := range []search.HashStrategy{search.HashDirect, search.HashIncremental} {
		e, err := search.NewEngine(search.WithHashStrategy(s))
		if err != nil {
			return nil, err
		}
		out[s] = e
	}
	return out, nil
}
