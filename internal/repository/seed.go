package repository

import (
	"time"

	"github.com/authenticore/registry/internal/model"
	"github.com/authenticore/registry/internal/utils"
)

// Seed fills an empty store with demo accounts and one sample product
// carrying a full supply-chain history. Intended for demos and manual
// testing; enabled via SEED_DEMO_DATA.
func (s *Store) Seed(bcryptCost int) error {
	seedUsers := []struct {
		username, password, company, wallet, email string
		role                                       model.Role
	}{
		{"admin", "admin123", "", "", "admin@authenticore.com", model.RoleAdmin},
		{"soundwave", "password123", "SoundWave Electronics", "7e2b...a9f2", "contact@soundwave.com", model.RoleManufacturer},
		{"globallogistics", "logistics123", "Global Logistics Inc.", "", "ops@globallogistics.com", model.RoleDistributor},
		{"techretail", "retail123", "TechRetail", "", "store@techretail.com", model.RoleRetailer},
		{"johndoe", "consumer123", "", "", "john.doe@example.com", model.RoleConsumer},
	}
	for _, su := range seedUsers {
		hash, err := utils.HashPassword(su.password, bcryptCost)
		if err != nil {
			return err
		}
		if _, err := s.CreateUser(NewUser{
			Username:      su.username,
			PasswordHash:  hash,
			CompanyName:   su.company,
			Role:          su.role,
			WalletAddress: su.wallet,
			Email:         su.email,
		}); err != nil {
			return err
		}
	}

	made := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	prod, err := s.CreateProduct(NewProduct{
		ProductName:       "Premium Wireless Headphones",
		ManufacturerName:  "SoundWave Electronics",
		SerialNumber:      "SW-H7829B-2023",
		ManufacturingDate: &made,
		Category:          "Electronics",
		Description:       "High-quality wireless headphones with noise cancellation",
	}, 2) // soundwave
	if err != nil {
		return err
	}

	events := []struct {
		event model.EventType
		data  map[string]any
	}{
		{model.EventManufactured, map[string]any{"location": "Factory 1", "userId": 2, "role": model.RoleManufacturer}},
		{model.EventQualityCheck, map[string]any{"status": "passed", "userId": 2, "role": model.RoleManufacturer}},
		{model.EventShippedToDistributor, map[string]any{"destination": "Global Logistics Warehouse", "userId": 3, "role": model.RoleDistributor}},
		{model.EventReceivedByDistributor, map[string]any{"location": "Global Logistics Warehouse", "userId": 3, "role": model.RoleDistributor}},
		{model.EventShippedToRetailer, map[string]any{"destination": "TechRetail Store #42", "userId": 3, "role": model.RoleDistributor}},
		{model.EventReceivedByRetailer, map[string]any{"location": "TechRetail Store #42", "userId": 4, "role": model.RoleRetailer}},
		{model.EventPurchased, map[string]any{"buyer": "Consumer", "userId": 5, "role": model.RoleConsumer}},
		{model.EventVerified, map[string]any{"location": "Consumer Home", "userId": 5, "role": model.RoleConsumer}},
	}
	for _, e := range events {
		if _, err := s.AddProductHistoryEvent(prod.ID, e.event, "", e.data); err != nil {
			return err
		}
	}
	return nil
}
