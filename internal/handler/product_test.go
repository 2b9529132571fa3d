package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authenticore/registry/internal/model"
	"github.com/authenticore/registry/internal/queue"
	"github.com/authenticore/registry/internal/repository"
)

// recordingPublisher captures published events instead of dialing a broker.
type recordingPublisher struct {
	registered []queue.PassportRegisteredEvent
	history    []queue.PassportHistoryEvent
}

func (r *recordingPublisher) PassportRegistered(_ context.Context, ev queue.PassportRegisteredEvent) error {
	r.registered = append(r.registered, ev)
	return nil
}

func (r *recordingPublisher) PassportHistory(_ context.Context, ev queue.PassportHistoryEvent) error {
	r.history = append(r.history, ev)
	return nil
}

var codePattern = regexp.MustCompile(`^AC[A-Z0-9]{6}$`)

const widgetBody = `{"productName":"Widget","manufacturerName":"Acme Co"}`

func createProduct(t *testing.T, h *ProductHandler, body string) model.Product {
	t.Helper()
	c, rec := ctxJSON(http.MethodPost, "/api/products", body)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var p model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestCreateProduct(t *testing.T) {
	t.Run("assigns code, tx id and created event", func(t *testing.T) {
		pub := &recordingPublisher{}
		h := NewProductHandler(repository.NewStore(), pub)

		p := createProduct(t, h, widgetBody)
		assert.Regexp(t, codePattern, p.Code)
		assert.Len(t, p.Code, 8)
		assert.NotEmpty(t, p.BlockchainTxID)
		assert.Equal(t, uint64(defaultManufacturerID), p.ManufacturerID)

		history, err := h.Store.GetProductHistory(p.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, model.EventCreated, history[0].Event)

		require.Len(t, pub.registered, 1)
		assert.Equal(t, p.Code, pub.registered[0].ProductCode)
		assert.NotEmpty(t, pub.registered[0].EventID)
	})

	t.Run("honors explicit manufacturer id", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		p := createProduct(t, h, `{"productName":"Widget","manufacturerName":"Acme Co","manufacturerId":5}`)
		assert.Equal(t, uint64(5), p.ManufacturerID)
	})

	t.Run("accepts plain dates", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		p := createProduct(t, h, `{"productName":"Widget","manufacturerName":"Acme Co","manufacturingDate":"2023-01-15"}`)
		require.NotNil(t, p.ManufacturingDate)
		assert.Equal(t, 2023, p.ManufacturingDate.Year())
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		c, rec := ctxJSON(http.MethodPost, "/api/products", `{"productName":"Widget","manufacturerName":"Acme Co","expiryDate":"soon"}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "expiryDate")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		c, rec := ctxJSON(http.MethodPost, "/api/products", `{"productName":"ab","manufacturerName":"A"}`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetByCode(t *testing.T) {
	h := NewProductHandler(repository.NewStore(), nil)
	p := createProduct(t, h, widgetBody)

	t.Run("found", func(t *testing.T) {
		c, rec := ctxJSON(http.MethodGet, "/api/products/"+p.Code, "")
		c.SetParamNames("id")
		c.SetParamValues(p.Code)
		require.NoError(t, h.GetByCode(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"productName":"Widget"`)
	})

	t.Run("unknown code is a 404 here, unlike verification", func(t *testing.T) {
		c, rec := ctxJSON(http.MethodGet, "/api/products/ACZZZZZZ", "")
		c.SetParamNames("id")
		c.SetParamValues("ACZZZZZZ")
		require.NoError(t, h.GetByCode(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHistoryEndpoints(t *testing.T) {
	t.Run("append then read yields N+1 in order", func(t *testing.T) {
		pub := &recordingPublisher{}
		h := NewProductHandler(repository.NewStore(), pub)
		p := createProduct(t, h, widgetBody)

		const n = 5
		for i := 0; i < n; i++ {
			body := fmt.Sprintf(`{"event":"manufactured","data":{"batch":%d}}`, i)
			c, rec := ctxJSON(http.MethodPost, "/api/products/1/history", body)
			c.SetParamNames("id")
			c.SetParamValues(fmt.Sprint(p.ID))
			require.NoError(t, h.AppendHistory(c))
			require.Equal(t, http.StatusCreated, rec.Code)
		}

		c, rec := ctxJSON(http.MethodGet, "/api/products/1/history", "")
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(p.ID))
		require.NoError(t, h.History(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var history []model.ProductHistory
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
		require.Len(t, history, n+1)
		assert.Equal(t, model.EventCreated, history[0].Event)
		for _, entry := range history[1:] {
			assert.Equal(t, model.EventManufactured, entry.Event)
		}
		assert.Len(t, pub.history, n)
	})

	t.Run("unknown tag lands in the custom category", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		p := createProduct(t, h, widgetBody)

		c, rec := ctxJSON(http.MethodPost, "/api/products/1/history", `{"event":"shipped"}`)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(p.ID))
		require.NoError(t, h.AppendHistory(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		var entry model.ProductHistory
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entry))
		assert.Equal(t, model.EventCustom, entry.Event)
		assert.Equal(t, "shipped", entry.Label)
	})

	t.Run("bad id", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		c, rec := ctxJSON(http.MethodGet, "/api/products/abc/history", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")
		require.NoError(t, h.History(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		c, rec := ctxJSON(http.MethodPost, "/api/products/42/history", `{"event":"purchased"}`)
		c.SetParamNames("id")
		c.SetParamValues("42")
		require.NoError(t, h.AppendHistory(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing event tag", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		p := createProduct(t, h, widgetBody)
		c, rec := ctxJSON(http.MethodPost, "/api/products/1/history", `{"data":{"location":"x"}}`)
		c.SetParamNames("id")
		c.SetParamValues(fmt.Sprint(p.ID))
		require.NoError(t, h.AppendHistory(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVerify(t *testing.T) {
	t.Run("unknown code answers 200 with negative result", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		c, rec := ctxJSON(http.MethodGet, "/api/verify/ACZZZZZZ", "")
		c.SetParamNames("productId")
		c.SetParamValues("ACZZZZZZ")
		require.NoError(t, h.Verify(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			IsAuthentic bool   `json:"isAuthentic"`
			Message     string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.IsAuthentic)
		assert.NotEmpty(t, resp.Message)
	})

	t.Run("fresh product verifies with its created event", func(t *testing.T) {
		h := NewProductHandler(repository.NewStore(), nil)
		p := createProduct(t, h, widgetBody)

		c, rec := ctxJSON(http.MethodGet, "/api/verify/"+p.Code, "")
		c.SetParamNames("productId")
		c.SetParamValues(p.Code)
		require.NoError(t, h.Verify(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			IsAuthentic bool                   `json:"isAuthentic"`
			Product     model.Product          `json:"product"`
			History     []model.ProductHistory `json:"history"`
			Chain       struct {
				TransactionID string `json:"transactionId"`
				Network       string `json:"network"`
			} `json:"blockchainVerification"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.IsAuthentic)
		assert.Equal(t, "Widget", resp.Product.ProductName)
		require.NotEmpty(t, resp.History)
		assert.Equal(t, model.EventCreated, resp.History[0].Event)
		assert.Equal(t, p.BlockchainTxID, resp.Chain.TransactionID)
		assert.Equal(t, "Solana", resp.Chain.Network)
	})
}

func TestManufacturerProducts(t *testing.T) {
	h := NewProductHandler(repository.NewStore(), nil)
	createProduct(t, h, widgetBody)
	createProduct(t, h, `{"productName":"Gadget","manufacturerName":"Acme Co"}`)
	createProduct(t, h, `{"productName":"Gizmo","manufacturerName":"Other Inc","manufacturerId":2}`)

	t.Run("lists in insertion order", func(t *testing.T) {
		c, rec := ctxJSON(http.MethodGet, "/api/manufacturers/1/products", "")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, h.ManufacturerProducts(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var prods []model.Product
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prods))
		require.Len(t, prods, 2)
		assert.Equal(t, "Widget", prods[0].ProductName)
		assert.Equal(t, "Gadget", prods[1].ProductName)
	})

	t.Run("bad id", func(t *testing.T) {
		c, rec := ctxJSON(http.MethodGet, "/api/manufacturers/abc/products", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")
		require.NoError(t, h.ManufacturerProducts(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// TestEndToEndScenario follows one passport through registration,
// product creation and verification.
func TestEndToEndScenario(t *testing.T) {
	store := repository.NewStore()
	auth := NewAuthHandler(testConfig(), store, repository.NewTokenRepo(nil))
	products := NewProductHandler(store, nil)

	c, rec := ctxJSON(http.MethodPost, "/api/auth/register", registerBody)
	require.NoError(t, auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var reg authRespBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, "manufacturer", reg.User.Role)

	p := createProduct(t, products, `{"productName":"Widget","manufacturerName":"Acme Co"}`)
	assert.Regexp(t, codePattern, p.Code)
	assert.Len(t, p.Code, 8)

	c, rec = ctxJSON(http.MethodGet, "/api/verify/"+p.Code, "")
	c.SetParamNames("productId")
	c.SetParamValues(p.Code)
	require.NoError(t, products.Verify(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		IsAuthentic bool          `json:"isAuthentic"`
		Product     model.Product `json:"product"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsAuthentic)
	assert.Equal(t, "Widget", resp.Product.ProductName)
}
