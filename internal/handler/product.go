package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/authenticore/registry/internal/model"
	"github.com/authenticore/registry/internal/queue"
	"github.com/authenticore/registry/internal/repository"
	"github.com/authenticore/registry/internal/schema"
)

// defaultManufacturerID is used when a product is registered without a
// manufacturerId in the body. A deliberate demo shortcut: no session
// mechanism attributes products to callers.
const defaultManufacturerID = 1

// EventPublisher publishes passport events to the broker. Failures are
// ignored by callers; a nil publisher disables publishing entirely.
type EventPublisher interface {
	PassportRegistered(ctx context.Context, ev queue.PassportRegisteredEvent) error
	PassportHistory(ctx context.Context, ev queue.PassportHistoryEvent) error
}

// ProductHandler bundles dependencies for product, history and
// verification endpoints.
type ProductHandler struct {
	Store  *repository.Store
	Events EventPublisher
}

func NewProductHandler(s *repository.Store, ev EventPublisher) *ProductHandler {
	return &ProductHandler{Store: s, Events: ev}
}

// blockchainPart is the mock on-chain reference attached to verification
// responses. Display-only; nothing verifies it.
type blockchainPart struct {
	TransactionID string    `json:"transactionId"`
	Network       string    `json:"network"`
	Timestamp     time.Time `json:"timestamp"`
}

type verifyResp struct {
	IsAuthentic  bool                    `json:"isAuthentic"`
	Product      *model.Product          `json:"product,omitempty"`
	History      []model.ProductHistory  `json:"history,omitempty"`
	Verification *blockchainPart         `json:"blockchainVerification,omitempty"`
	Message      string                  `json:"message,omitempty"`
}

// Create registers a product passport: generated code and transaction id,
// an automatic "created" history event, and a registration event on the
// broker.
func (h *ProductHandler) Create(c echo.Context) error {
	var req schema.ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	errs := schema.ValidateProduct(&req)
	mfgDate, err := parseDate(req.ManufacturingDate)
	if err != nil {
		errs = append(errs, schema.FieldError{Field: "manufacturingDate", Message: "Invalid date format"})
	}
	expDate, err := parseDate(req.ExpiryDate)
	if err != nil {
		errs = append(errs, schema.FieldError{Field: "expiryDate", Message: "Invalid date format"})
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid product data", "errors": errs})
	}

	manufacturerID := req.ManufacturerID
	if manufacturerID == 0 {
		manufacturerID = defaultManufacturerID
	}

	prod, err := h.Store.CreateProduct(repository.NewProduct{
		ProductName:       req.ProductName,
		ManufacturerName:  req.ManufacturerName,
		SerialNumber:      req.SerialNumber,
		ManufacturingDate: mfgDate,
		ExpiryDate:        expDate,
		Category:          req.Category,
		Description:       req.Description,
	}, manufacturerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create product"})
	}

	if _, err := h.Store.AddProductHistoryEvent(prod.ID, model.EventCreated, "", map[string]any{"manufacturerId": manufacturerID}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create product"})
	}

	if h.Events != nil {
		_ = h.Events.PassportRegistered(c.Request().Context(), queue.PassportRegisteredEvent{
			EventID:          uuid.NewString(),
			ProductID:        prod.ID,
			ProductCode:      prod.Code,
			ProductName:      prod.ProductName,
			ManufacturerID:   prod.ManufacturerID,
			ManufacturerName: prod.ManufacturerName,
			BlockchainTxID:   prod.BlockchainTxID,
			RegisteredAt:     prod.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusCreated, prod)
}

// GetByCode returns a product by its public code.
func (h *ProductHandler) GetByCode(c echo.Context) error {
	prod, err := h.Store.GetProductByCode(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}
	return c.JSON(http.StatusOK, prod)
}

// History returns a product's history events in insertion order.
func (h *ProductHandler) History(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid product ID"})
	}
	history, err := h.Store.GetProductHistory(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
	}
	return c.JSON(http.StatusOK, history)
}

// AppendHistory appends a lifecycle event to a product. Unknown tags fall
// into the custom category with the original text as label.
func (h *ProductHandler) AppendHistory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid product ID"})
	}
	var req schema.HistoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if errs := schema.ValidateHistory(&req); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid event data", "errors": errs})
	}

	event, label := model.NormalizeEvent(req.Event)
	entry, err := h.Store.AddProductHistoryEvent(id, event, label, req.Data)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to add history event"})
	}

	if h.Events != nil {
		prod, perr := h.Store.GetProduct(id)
		if perr == nil {
			_ = h.Events.PassportHistory(c.Request().Context(), queue.PassportHistoryEvent{
				EventID:     uuid.NewString(),
				ProductID:   id,
				ProductCode: prod.Code,
				Event:       string(entry.Event),
				Label:       entry.Label,
				RecordedAt:  entry.Timestamp.Format(time.RFC3339),
			})
		}
	}
	return c.JSON(http.StatusCreated, entry)
}

// Verify answers whether a public code resolves to a known passport. An
// unknown code is a successful response with a negative result, never an
// HTTP error: "not authentic" is a business outcome.
func (h *ProductHandler) Verify(c echo.Context) error {
	prod, err := h.Store.GetProductByCode(c.Param("productId"))
	if err != nil {
		return c.JSON(http.StatusOK, verifyResp{
			IsAuthentic: false,
			Message:     "Product not found in the blockchain registry.",
		})
	}
	history, err := h.Store.GetProductHistory(prod.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, verifyResp{
			IsAuthentic: false,
			Message:     "Verification failed. Please try again.",
		})
	}
	return c.JSON(http.StatusOK, verifyResp{
		IsAuthentic: true,
		Product:     &prod,
		History:     history,
		Verification: &blockchainPart{
			TransactionID: prod.BlockchainTxID,
			Network:       "Solana",
			Timestamp:     prod.CreatedAt,
		},
	})
}

// ManufacturerProducts lists a manufacturer's products in insertion order.
func (h *ProductHandler) ManufacturerProducts(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid manufacturer ID"})
	}
	return c.JSON(http.StatusOK, h.Store.GetProductsByManufacturer(id))
}

// parseDate accepts RFC 3339 or plain YYYY-MM-DD date strings.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}
