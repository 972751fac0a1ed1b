package server

import (
	"log"
	"net/http"

	"github.com/matst80/slask-wardrobe/pkg/common"
	"github.com/matst80/slask-wardrobe/pkg/draft"
	"github.com/matst80/slask-wardrobe/pkg/names"
	"github.com/matst80/slask-wardrobe/pkg/session"
	"github.com/matst80/slask-wardrobe/pkg/types"
)

type DraftResponse struct {
	Draft     *draft.Draft                         `json:"draft"`
	Summaries map[types.Dimension]names.Resolution `json:"summaries"`
}

type saveRequest struct {
	VendorId types.ValueId `json:"vendorId"`
}

var draftDimensions = append([]types.Dimension{types.DressType}, types.AttributeDimensions...)

func (s *Server) draftResponse(d *draft.Draft) DraftResponse {
	return DraftResponse{
		Draft:     d,
		Summaries: s.Names.Summaries(d, draftDimensions...),
	}
}

func (s *Server) GetDraft(r *http.Request, sess *session.Session) (any, error) {
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) ResetDraft(r *http.Request, sess *session.Session) (any, error) {
	sess.Draft.Reset()
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) SetDraftDressType(r *http.Request, sess *session.Session) (any, error) {
	var req dressTypeRequest
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	if req.Id == nil {
		sess.Draft.SetDressType("")
	} else {
		sess.Draft.SetDressType(*req.Id)
	}
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) ToggleDraft(r *http.Request, sess *session.Session) (any, error) {
	dim, err := dimensionParam(r)
	if err != nil {
		return nil, err
	}
	if _, err = sess.Draft.Toggle(dim, types.ValueId(r.PathValue("id"))); err != nil {
		return nil, requestError(err)
	}
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) ClearDraft(r *http.Request, sess *session.Session) (any, error) {
	dim, err := dimensionParam(r)
	if err != nil {
		return nil, err
	}
	if err = sess.Draft.Clear(dim); err != nil {
		return nil, requestError(err)
	}
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) SetDraftTitle(r *http.Request, sess *session.Session) (any, error) {
	var req struct {
		Title string `json:"title"`
	}
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	sess.Draft.SetTitle(req.Title)
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) SetDraftPriceMode(r *http.Request, sess *session.Session) (any, error) {
	var req struct {
		Mode types.PriceMode `json:"mode"`
	}
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	if err := sess.Draft.SetPriceMode(req.Mode); err != nil {
		return nil, requestError(err)
	}
	return s.draftResponse(sess.Draft), nil
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

func (s *Server) SetDraftAmountTotal(r *http.Request, sess *session.Session) (any, error) {
	var req amountRequest
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	sess.Draft.SetAmountTotal(req.Amount)
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) SetDraftAmountPerUnit(r *http.Request, sess *session.Session) (any, error) {
	var req amountRequest
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	sess.Draft.SetAmountPerUnit(req.Amount)
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) SetDraftSizes(r *http.Request, sess *session.Session) (any, error) {
	var sizes []string
	if err := common.DecodeJson(r, &sizes); err != nil {
		return nil, err
	}
	sess.Draft.SetAvailableSizes(sizes)
	return s.draftResponse(sess.Draft), nil
}

func (s *Server) SetDraftInventory(r *http.Request, sess *session.Session) (any, error) {
	var req struct {
		Qty float64 `json:"qty"`
	}
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	sess.Draft.SetInventoryQty(req.Qty)
	return s.draftResponse(sess.Draft), nil
}

// SaveDraft validates the draft, hands the payload to the sink and resets the draft. The
// saved item is put first in the local snapshot so it is visible before the next refresh.
func (s *Server) SaveDraft(r *http.Request, sess *session.Session) (any, error) {
	var req saveRequest
	if err := common.DecodeJson(r, &req); err != nil {
		return nil, err
	}
	if err := sess.Draft.Validate(); err != nil {
		return nil, common.Unprocessable(err)
	}
	payload := sess.Draft.Payload(s.NewId(), req.VendorId, s.Now())
	if err := s.Sink.SaveProduct(r.Context(), payload); err != nil {
		log.Printf("Failed to save product %s: %v", payload.Id, err)
		return nil, common.BadGateway(err)
	}
	productsSaved.Inc()
	s.Catalog.Upsert(payload.Item())
	sess.Draft.Reset()
	return payload, nil
}
