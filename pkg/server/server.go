package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/matst80/slask-wardrobe/pkg/common"
	"github.com/matst80/slask-wardrobe/pkg/names"
	"github.com/matst80/slask-wardrobe/pkg/session"
	"github.com/matst80/slask-wardrobe/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filterRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wardrobe_filter_requests_total",
		Help: "The total number of catalog filter requests",
	}, []string{"kind"})
	chainTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wardrobe_chain_transitions_total",
		Help: "The total number of guided chain transitions",
	}, []string{"flow", "outcome"})
	productsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wardrobe_products_saved_total",
		Help: "The total number of saved product drafts",
	})
)

// Server exposes filter, draft and chain state of a session over http.
type Server struct {
	Sessions *session.Store
	Catalog  *catalog.Snapshot
	Names    *names.Resolver
	Sink     ProductSink
	Now      func() time.Time
	NewId    func() types.ValueId
}

func NewServer(sessions *session.Store, snapshot *catalog.Snapshot, resolver *names.Resolver, sink ProductSink) *Server {
	if sink == nil {
		sink = LogSink{}
	}
	return &Server{
		Sessions: sessions,
		Catalog:  snapshot,
		Names:    resolver,
		Sink:     sink,
		Now:      time.Now,
		NewId: func() types.ValueId {
			return types.ValueId(uuid.New().String())
		},
	}
}

func (s *Server) json(fn func(r *http.Request, sess *session.Session) (any, error)) http.HandlerFunc {
	return common.JsonHandler(s.Sessions, fn)
}

// locked runs fn inside the session lock. The result is encoded before the lock is released
// since responses hold the live filter and draft of the session.
func (s *Server) locked(fn func(r *http.Request, sess *session.Session) (any, error)) http.HandlerFunc {
	return s.json(func(r *http.Request, sess *session.Session) (any, error) {
		var body json.RawMessage
		err := sess.Do(func(sess *session.Session) error {
			ret, err := fn(r, sess)
			if err != nil {
				return err
			}
			body, err = sonic.ConfigDefault.Marshal(ret)
			return err
		})
		if err != nil {
			return nil, err
		}
		return body, nil
	})
}

func (s *Server) Handle() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("GET /api/filter", s.locked(s.GetFilter))
	srv.HandleFunc("PUT /api/filter/dress-type", s.locked(s.SetFilterDressType))
	srv.HandleFunc("PUT /api/filter/vendors", s.locked(s.SetFilterVendors))
	srv.HandleFunc("POST /api/filter/{dimension}/toggle/{id}", s.locked(s.ToggleFilter))
	srv.HandleFunc("DELETE /api/filter/{dimension}", s.locked(s.ClearFilter))
	srv.HandleFunc("DELETE /api/filter", s.locked(s.ResetFilter))
	srv.HandleFunc("GET /api/results", s.locked(s.Results))
	srv.HandleFunc("GET /api/search", common.JsonHandler(nil, s.Search))

	srv.HandleFunc("GET /api/facets/{dimension}", common.JsonHandler(nil, s.GetFacet))
	srv.HandleFunc("GET /api/price-bands", common.JsonHandler(nil, s.GetPriceBands))

	srv.HandleFunc("GET /api/draft", s.locked(s.GetDraft))
	srv.HandleFunc("DELETE /api/draft", s.locked(s.ResetDraft))
	srv.HandleFunc("PUT /api/draft/dress-type", s.locked(s.SetDraftDressType))
	srv.HandleFunc("POST /api/draft/{dimension}/toggle/{id}", s.locked(s.ToggleDraft))
	srv.HandleFunc("DELETE /api/draft/{dimension}", s.locked(s.ClearDraft))
	srv.HandleFunc("PUT /api/draft/title", s.locked(s.SetDraftTitle))
	srv.HandleFunc("PUT /api/draft/price-mode", s.locked(s.SetDraftPriceMode))
	srv.HandleFunc("PUT /api/draft/amount-total", s.locked(s.SetDraftAmountTotal))
	srv.HandleFunc("PUT /api/draft/amount-per-unit", s.locked(s.SetDraftAmountPerUnit))
	srv.HandleFunc("PUT /api/draft/sizes", s.locked(s.SetDraftSizes))
	srv.HandleFunc("PUT /api/draft/inventory", s.locked(s.SetDraftInventory))
	srv.HandleFunc("POST /api/draft/save", s.locked(s.SaveDraft))

	srv.HandleFunc("GET /api/chain/{flow}", s.locked(s.GetChain))
	srv.HandleFunc("POST /api/chain/{flow}/start", s.locked(s.StartChain))
	srv.HandleFunc("POST /api/chain/{flow}/resume", s.locked(s.ResumeChain))
	srv.HandleFunc("POST /api/chain/{flow}/retry", s.locked(s.RetryChain))
	srv.HandleFunc("POST /api/chain/{flow}/cancel", s.locked(s.CancelChain))

	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)
	return srv
}

func dimensionParam(r *http.Request) (types.Dimension, error) {
	dim, err := types.ParseDimension(r.PathValue("dimension"))
	if err != nil {
		return "", common.NotFound(err)
	}
	return dim, nil
}

// requestError maps domain errors of setters to client errors.
func requestError(err error) error {
	if err == nil {
		return nil
	}
	return common.BadRequest(err)
}
