package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matst80/slask-wardrobe/pkg/catalog"
	"github.com/matst80/slask-wardrobe/pkg/draft"
	"github.com/matst80/slask-wardrobe/pkg/names"
	"github.com/matst80/slask-wardrobe/pkg/session"
	"github.com/matst80/slask-wardrobe/pkg/types"
	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	saved []draft.Payload
	err   error
}

func (r *recordingSink) SaveProduct(_ context.Context, p draft.Payload) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, p)
	return nil
}

type client struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func (c *client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	if set := rec.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	var ret map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &ret); err != nil {
		c.t.Fatalf("invalid json response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, ret
}

func itemIds(t *testing.T, res map[string]any) []string {
	t.Helper()
	raw, ok := res["items"].([]any)
	if !ok {
		t.Fatalf("no items in %v", res)
	}
	ids := make([]string, len(raw))
	for i, item := range raw {
		ids[i] = item.(map[string]any)["id"].(string)
	}
	return ids
}

func newTestServer(t *testing.T) (*client, *Server, *recordingSink) {
	snapshot := catalog.NewSnapshot()
	snapshot.Replace([]types.CatalogItem{
		{
			Id:         "A",
			Attributes: types.ItemAttributes{DressTypeIds: []types.ValueId{"3"}, FabricIds: []types.ValueId{"silk"}},
			Price:      types.Price{Mode: types.Total, AmountTotal: types.Amount(500)},
		},
		{
			Id:         "B",
			Attributes: types.ItemAttributes{DressTypeIds: []types.ValueId{"4"}},
			Price:      types.Price{Mode: types.Total, AmountTotal: types.Amount(5000)},
		},
		{
			Id:         "C",
			Attributes: types.ItemAttributes{DressTypeIds: []types.ValueId{"3"}, FabricIds: []types.ValueId{"cotton"}},
		},
	}, []types.Band{
		{Id: "low", Name: "Under 1000", MaxAmount: types.Amount(1000)},
	})
	resolver := names.NewResolver()
	resolver.Commit(types.Fabric, []types.NameEntry{{Id: "silk", Name: "Silk"}, {Id: "cotton", Name: "Cotton"}})

	sink := &recordingSink{}
	srv := NewServer(session.NewStore(time.Hour), snapshot, resolver, sink)
	srv.Now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	srv.NewId = func() types.ValueId { return "new" }
	return &client{t: t, handler: srv.Handle()}, srv, sink
}

func TestFilterFlow(t *testing.T) {
	c, _, _ := newTestServer(t)

	code, res := c.do("GET", "/api/results", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"A", "B", "C"}, itemIds(t, res))
	assert.NotEmpty(t, c.cookies)

	code, res = c.do("PUT", "/api/filter/dress-type", `{"id":"3"}`)
	assert.Equal(t, http.StatusOK, code)
	state := res["state"].(map[string]any)
	assert.Equal(t, "3", state["dressTypeId"])

	code, res = c.do("POST", "/api/filter/fabric/toggle/silk", "")
	assert.Equal(t, http.StatusOK, code)
	fabric := res["summaries"].(map[string]any)["fabric"].(map[string]any)
	assert.Equal(t, "resolved", fabric["state"])
	assert.Equal(t, "Silk", fabric["summary"])

	_, res = c.do("GET", "/api/results", "")
	assert.Equal(t, []string{"A"}, itemIds(t, res))

	_, res = c.do("PUT", "/api/filter/dress-type", `{"id":null}`)
	assert.Nil(t, res["state"].(map[string]any)["dressTypeId"])
	assert.Empty(t, res["state"].(map[string]any)["fabric"])

	code, _ = c.do("POST", "/api/filter/priceBand/toggle/low", "")
	assert.Equal(t, http.StatusOK, code)
	_, res = c.do("GET", "/api/results", "")
	assert.Equal(t, []string{"A"}, itemIds(t, res))
}

func TestFilterErrors(t *testing.T) {
	c, _, _ := newTestServer(t)

	code, res := c.do("POST", "/api/filter/dressType/toggle/3", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, res["error"])

	code, _ = c.do("POST", "/api/filter/size/toggle/s", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do("PUT", "/api/filter/dress-type", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSessionsAreIsolated(t *testing.T) {
	c, _, _ := newTestServer(t)
	other := &client{t: t, handler: c.handler}

	c.do("PUT", "/api/filter/dress-type", `{"id":"4"}`)
	_, res := other.do("GET", "/api/results", "")
	assert.Len(t, itemIds(t, res), 3)
	_, res = c.do("GET", "/api/results", "")
	assert.Equal(t, []string{"B"}, itemIds(t, res))
}

func TestSearch(t *testing.T) {
	c, _, _ := newTestServer(t)
	code, res := c.do("GET", "/api/search?dressType=3&fabric=cotton,silk", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"A", "C"}, itemIds(t, res))
	assert.Equal(t, float64(3), res["of"])
}

func TestSaveDraft(t *testing.T) {
	c, srv, sink := newTestServer(t)

	code, res := c.do("POST", "/api/draft/save", `{"vendorId":"v1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, res["error"], "title is required")

	c.do("PUT", "/api/draft/dress-type", `{"id":"3"}`)
	c.do("POST", "/api/draft/fabric/toggle/silk", "")
	c.do("PUT", "/api/draft/title", `{"title":"Silk suit"}`)
	c.do("PUT", "/api/draft/amount-total", `{"amount":1200.9}`)
	c.do("PUT", "/api/draft/sizes", `["S","M"]`)
	_, res = c.do("PUT", "/api/draft/inventory", `{"qty":-4}`)
	assert.Equal(t, float64(0), res["draft"].(map[string]any)["inventoryQty"])

	code, res = c.do("POST", "/api/draft/save", `{"vendorId":"v1"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "new", res["id"])
	if assert.Len(t, sink.saved, 1) {
		p := sink.saved[0]
		assert.Equal(t, types.ValueId("v1"), p.VendorId)
		assert.Equal(t, []types.ValueId{"silk"}, p.Attributes.FabricIds)
		assert.Equal(t, 1200.0, *p.Price.AmountTotal)
	}
	assert.Equal(t, types.ValueId("new"), srv.Catalog.Items()[0].Id)

	_, res = c.do("GET", "/api/draft", "")
	assert.Equal(t, "", res["draft"].(map[string]any)["title"])
}

func TestSaveDraftSinkFailure(t *testing.T) {
	c, srv, sink := newTestServer(t)
	sink.err = errors.New("broker down")
	c.do("PUT", "/api/draft/dress-type", `{"id":"3"}`)
	c.do("PUT", "/api/draft/title", `{"title":"Lawn"}`)
	c.do("PUT", "/api/draft/amount-total", `{"amount":10}`)

	code, _ := c.do("POST", "/api/draft/save", `{}`)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Len(t, srv.Catalog.Items(), 3)

	_, res := c.do("GET", "/api/draft", "")
	assert.Equal(t, "Lawn", res["draft"].(map[string]any)["title"])
}

func TestDraftRejectsFilterDimensions(t *testing.T) {
	c, _, _ := newTestServer(t)
	code, _ := c.do("POST", "/api/draft/vendor/toggle/v1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do("PUT", "/api/draft/price-mode", `{"mode":"weight"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestChainFlow(t *testing.T) {
	c, _, _ := newTestServer(t)

	_, res := c.do("POST", "/api/chain/buyer/resume", "")
	assert.Equal(t, "ignored", res["outcome"])
	assert.Equal(t, "idle", res["phase"])

	code, res := c.do("POST", "/api/chain/buyer/start?from=color", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "awaiting-resume", res["phase"])
	assert.Equal(t, "color", res["open"])

	for i := 0; i < 2; i++ {
		_, res = c.do("GET", "/api/chain/buyer", "")
		assert.Equal(t, "color", res["open"])
		assert.Equal(t, "color", res["step"])
	}

	_, res = c.do("POST", "/api/chain/buyer/resume", "")
	assert.Equal(t, "advanced", res["outcome"])
	assert.Equal(t, "originCity", res["open"])

	_, res = c.do("POST", "/api/chain/buyer/resume", "")
	assert.Equal(t, "completed", res["outcome"])
	assert.Equal(t, "idle", res["phase"])
	assert.Nil(t, res["open"])

	_, res = c.do("POST", "/api/chain/buyer/start", "")
	assert.Equal(t, "dressType", res["open"])
	_, res = c.do("POST", "/api/chain/buyer/cancel", "")
	assert.Equal(t, "idle", res["phase"])
	assert.Nil(t, res["open"])

	code, _ = c.do("POST", "/api/chain/buyer/start?from=wearState", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = c.do("GET", "/api/chain/checkout", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFacetsAndBands(t *testing.T) {
	c, _, _ := newTestServer(t)
	_, res := c.do("GET", "/api/facets/fabric", "")
	assert.Equal(t, true, res["loaded"])
	assert.Len(t, res["entries"], 2)

	_, res = c.do("GET", "/api/facets/color", "")
	assert.Equal(t, false, res["loaded"])
	assert.Empty(t, res["entries"])
}

func TestSameSessionConcurrentRequests(t *testing.T) {
	c, _, _ := newTestServer(t)
	c.do("GET", "/api/filter", "")
	cookies := c.cookies

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				req := httptest.NewRequest("GET", "/api/filter", nil)
				if (i+j)%2 == 0 {
					req = httptest.NewRequest("POST", "/api/filter/fabric/toggle/x", nil)
				}
				for _, cookie := range cookies {
					req.AddCookie(cookie)
				}
				rec := httptest.NewRecorder()
				c.handler.ServeHTTP(rec, req)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.True(t, json.Valid(rec.Body.Bytes()), rec.Body.String())
			}
		}(i)
	}
	wg.Wait()

	// 200 toggles leave the value unselected.
	_, res := c.do("GET", "/api/filter", "")
	assert.Empty(t, res["state"].(map[string]any)["fabric"])
}
