package repository

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"sync"
	"time"

	"github.com/authenticore/registry/internal/model"
)

// codePrefix and codeAlphabet define the public product code format: the
// fixed prefix followed by six random characters from the alphabet.
const (
	codePrefix    = "AC"
	codeAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeRandChars = 6
)

// NewUser carries the fields accepted when creating a user. PasswordHash
// must already be a bcrypt digest; the store never sees plaintext.
type NewUser struct {
	Username        string
	PasswordHash    string
	CompanyName     string
	Role            model.Role
	Permissions     []model.Permission
	WalletAddress   string
	Email           string
	PhoneNumber     string
	ProfileImageURL string
}

// NewProduct carries the client-suppliable fields of a product. The public
// code and blockchain transaction id are generated by the store.
type NewProduct struct {
	ProductName       string
	ManufacturerName  string
	SerialNumber      string
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	Category          string
	Description       string
}

// Store is the in-memory repository for users, products and product
// history. It is handed to handlers as an explicit dependency rather than
// exposed as a package singleton, so tests get isolated instances.
//
// A single RWMutex guards all three collections; every operation is a
// short map or slice mutation. Process memory is the only persistence
// boundary: all data is lost on restart.
type Store struct {
	mu         sync.RWMutex
	users      map[uint64]model.User
	products   map[uint64]model.Product
	histories  map[uint64][]model.ProductHistory
	userSeq    uint64
	productSeq uint64
	historySeq uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[uint64]model.User),
		products:  make(map[uint64]model.Product),
		histories: make(map[uint64][]model.ProductHistory),
	}
}

// CreateUser assigns the next id, applies role and permission defaults and
// stores the record. Duplicate usernames are rejected with
// ErrUsernameExists.
func (s *Store) CreateUser(p NewUser) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == p.Username {
			return model.User{}, ErrUsernameExists
		}
	}

	role := p.Role
	if role == "" {
		role = model.RoleGuest
	}
	perms := p.Permissions
	if perms == nil {
		perms = model.DefaultPermissions(role)
	}

	s.userSeq++
	u := model.User{
		ID:              s.userSeq,
		Username:        p.Username,
		PasswordHash:    p.PasswordHash,
		CompanyName:     p.CompanyName,
		Role:            role,
		Permissions:     perms,
		WalletAddress:   p.WalletAddress,
		Email:           p.Email,
		PhoneNumber:     p.PhoneNumber,
		ProfileImageURL: p.ProfileImageURL,
		IsVerified:      false,
		CreatedAt:       time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u, nil
}

// GetUser fetches a user by id.
func (s *Store) GetUser(id uint64) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// GetUserByUsername fetches a user by exact username.
func (s *Store) GetUserByUsername(username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// GetUserByWalletAddress fetches a user by wallet address. Empty addresses
// never match.
func (s *Store) GetUserByWalletAddress(addr string) (model.User, error) {
	if addr == "" {
		return model.User{}, ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.WalletAddress == addr {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

// ListUsers returns every user in insertion order.
func (s *Store) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for id := uint64(1); id <= s.userSeq; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out
}

// TouchLastLogin stamps the user's LastLogin with the current time. Called
// only after a successful password check.
func (s *Store) TouchLastLogin(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	u.LastLogin = &now
	u.UpdatedAt = &now
	s.users[id] = u
	return nil
}

// CreateProduct assigns the next id, generates a unique public code and an
// opaque blockchain transaction id, and initializes an empty history list
// for the product.
func (s *Store) CreateProduct(p NewProduct, manufacturerID uint64) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.uniqueCodeLocked()
	if err != nil {
		return model.Product{}, err
	}
	txID, err := newTxID()
	if err != nil {
		return model.Product{}, err
	}

	s.productSeq++
	prod := model.Product{
		ID:                s.productSeq,
		Code:              code,
		ProductName:       p.ProductName,
		ManufacturerID:    manufacturerID,
		ManufacturerName:  p.ManufacturerName,
		SerialNumber:      p.SerialNumber,
		ManufacturingDate: p.ManufacturingDate,
		ExpiryDate:        p.ExpiryDate,
		Category:          p.Category,
		Description:       p.Description,
		BlockchainTxID:    txID,
		ImageURLs:         []string{},
		CreatedAt:         time.Now().UTC(),
	}
	s.products[prod.ID] = prod
	s.histories[prod.ID] = []model.ProductHistory{}
	return prod, nil
}

// GetProduct fetches a product by internal id.
func (s *Store) GetProduct(id uint64) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, ErrNotFound
	}
	return p, nil
}

// GetProductByCode fetches a product by its public code.
func (s *Store) GetProductByCode(code string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Code == code {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

// GetProductsByManufacturer returns the manufacturer's products in
// insertion order. An unknown manufacturer yields an empty slice.
func (s *Store) GetProductsByManufacturer(manufacturerID uint64) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Product{}
	for id := uint64(1); id <= s.productSeq; id++ {
		if p, ok := s.products[id]; ok && p.ManufacturerID == manufacturerID {
			out = append(out, p)
		}
	}
	return out
}

// GetProductHistory returns the product's history events in insertion
// order. A product with no events yields an empty slice; only an unknown
// product yields ErrNotFound.
func (s *Store) GetProductHistory(productID uint64) ([]model.ProductHistory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.products[productID]; !ok {
		return nil, ErrNotFound
	}
	history := s.histories[productID]
	out := make([]model.ProductHistory, len(history))
	copy(out, history)
	return out, nil
}

// AddProductHistoryEvent appends a history event with a server-assigned
// timestamp. Client-supplied timestamps are not accepted anywhere in the
// API surface.
func (s *Store) AddProductHistoryEvent(productID uint64, event model.EventType, label string, data map[string]any) (model.ProductHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[productID]; !ok {
		return model.ProductHistory{}, ErrNotFound
	}
	s.historySeq++
	h := model.ProductHistory{
		ID:        s.historySeq,
		ProductID: productID,
		Event:     event,
		Label:     label,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	s.histories[productID] = append(s.histories[productID], h)
	return h, nil
}

// uniqueCodeLocked generates a product code, retrying on collision.
// Callers must hold the write lock.
func (s *Store) uniqueCodeLocked() (string, error) {
	for {
		code, err := newProductCode()
		if err != nil {
			return "", err
		}
		taken := false
		for _, p := range s.products {
			if p.Code == code {
				taken = true
				break
			}
		}
		if !taken {
			return code, nil
		}
	}
}

// newProductCode returns the fixed prefix plus six random characters from
// the uppercase alphanumeric alphabet, e.g. "AC7K2Q9Z".
func newProductCode() (string, error) {
	buf := make([]byte, 0, len(codePrefix)+codeRandChars)
	buf = append(buf, codePrefix...)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeRandChars; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf = append(buf, codeAlphabet[n.Int64()])
	}
	return string(buf), nil
}

// newTxID returns a mock blockchain transaction id: "0x" followed by 16
// hex characters. It is an opaque display-only identifier with no
// verification contract.
func newTxID() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(buf), nil
}
