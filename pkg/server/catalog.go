package server

import (
	"net/http"

	"github.com/matst80/slask-wardrobe/pkg/session"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

type FacetResponse struct {
	Dimension types.Dimension   `json:"dimension"`
	Loaded    bool              `json:"loaded"`
	Entries   []types.NameEntry `json:"entries"`
}

func (s *Server) GetFacet(r *http.Request, _ *session.Session) (any, error) {
	dim, err := dimensionParam(r)
	if err != nil {
		return nil, err
	}
	entries, ok := s.Names.Entries(dim)
	if entries == nil {
		entries = []types.NameEntry{}
	}
	return FacetResponse{
		Dimension: dim,
		Loaded:    ok,
		Entries:   entries,
	}, nil
}

func (s *Server) GetPriceBands(r *http.Request, _ *session.Session) (any, error) {
	return s.Catalog.BandList(), nil
}
