package server

import (
	"net/http"

	"github.com/matst80/slask-wardrobe/pkg/common"
	"github.com/matst80/slask-wardrobe/pkg/facet"
	"github.com/matst80/slask-wardrobe/pkg/filter"
	"github.com/matst80/slask-wardrobe/pkg/names"
	"github.com/matst80/slask-wardrobe/pkg/session"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

type FilterResponse struct {
	State     *filter.State                        `json:"state"`
	Summaries map[types.Dimension]names.Resolution `json:"summaries"`
}

type ResultsResponse struct {
	Items []types.CatalogItem `json:"items"`
	Total int                 `json:"total"`
	Of    int                 `json:"of"`
}

type dressTypeRequest struct {
	Id *types.ValueId `json:"id"`
}

func (s *Server) filterResponse(state *filter.State) FilterResponse {
	return FilterResponse{
		State:     state,
		Summaries: s.Names.Summaries(state),
	}
}

func (s *Server) GetFilter(r *http.Request, sess *session.Session) (any, error) {
	return s.filterResponse(sess.Filter), nil
}

func (s *Server) SetFilterDressType(r *http.Request, sess *session.Session) (any, error) {
	var req dressTypeRequest
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	if req.Id == nil {
		sess.Filter.SetDressType("")
	} else {
		sess.Filter.SetDressType(*req.Id)
	}
	return s.filterResponse(sess.Filter), nil
}

func (s *Server) SetFilterVendors(r *http.Request, sess *session.Session) (any, error) {
	var ids []types.ValueId
	if err := common.DecodeJson(r, &ids); err != nil {
		return nil, err
	}
	sess.Filter.SetVendorIds(ids)
	return s.filterResponse(sess.Filter), nil
}

func (s *Server) ToggleFilter(r *http.Request, sess *session.Session) (any, error) {
	dim, err := dimensionParam(r)
	if err != nil {
		return nil, err
	}
	if _, err = sess.Filter.Toggle(dim, types.ValueId(r.PathValue("id"))); err != nil {
		return nil, requestError(err)
	}
	return s.filterResponse(sess.Filter), nil
}

func (s *Server) ClearFilter(r *http.Request, sess *session.Session) (any, error) {
	dim, err := dimensionParam(r)
	if err != nil {
		return nil, err
	}
	if err = sess.Filter.Clear(dim); err != nil {
		return nil, requestError(err)
	}
	return s.filterResponse(sess.Filter), nil
}

func (s *Server) ResetFilter(r *http.Request, sess *session.Session) (any, error) {
	sess.Filter.Reset()
	return s.filterResponse(sess.Filter), nil
}

func (s *Server) filter(r *http.Request, sel facet.Selection) ResultsResponse {
	items := s.Catalog.Items()
	matches := facet.SpannedFilter(r.Context(), items, sel, s.Catalog.Bands())
	return ResultsResponse{
		Items: matches,
		Total: len(matches),
		Of:    len(items),
	}
}

// Results filters the current snapshot with the session's filter state.
func (s *Server) Results(r *http.Request, sess *session.Session) (any, error) {
	filterRequests.WithLabelValues("session").Inc()
	return s.filter(r, sess.Filter), nil
}

// Search filters the current snapshot with a state decoded from the query string.
func (s *Server) Search(r *http.Request, _ *session.Session) (any, error) {
	state, err := filter.DecodeQuery(r.URL.Query())
	if err != nil {
		return nil, common.BadRequest(err)
	}
	filterRequests.WithLabelValues("query").Inc()
	return s.filter(r, state), nil
}
