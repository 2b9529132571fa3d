package model

import "time"

// Role is the closed set of account roles. Unknown roles are rejected at
// validation time; admin and guest are never self-assignable through the
// registration endpoint.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleManufacturer Role = "manufacturer"
	RoleDistributor  Role = "distributor"
	RoleRetailer     Role = "retailer"
	RoleConsumer     Role = "consumer"
	RoleGuest        Role = "guest"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManufacturer, RoleDistributor, RoleRetailer, RoleConsumer, RoleGuest:
		return true
	}
	return false
}

// SelfAssignable reports whether a role may be chosen at registration.
func SelfAssignable(r Role) bool {
	switch r {
	case RoleManufacturer, RoleDistributor, RoleRetailer, RoleConsumer:
		return true
	}
	return false
}

// TradeRole reports whether the role represents a company in the supply
// chain and therefore requires a company name at registration.
func TradeRole(r Role) bool {
	switch r {
	case RoleManufacturer, RoleDistributor, RoleRetailer:
		return true
	}
	return false
}

// Permission tags an action a user is allowed to perform. Defaults per
// role live in RolePermissions and are consulted once, at user creation.
type Permission string

const (
	PermViewProduct           Permission = "view_product"
	PermCreateProduct         Permission = "create_product"
	PermUpdateProduct         Permission = "update_product"
	PermDeleteProduct         Permission = "delete_product"
	PermViewManufacturer      Permission = "view_manufacturer"
	PermCreateManufacturer    Permission = "create_manufacturer"
	PermUpdateManufacturer    Permission = "update_manufacturer"
	PermDeleteManufacturer    Permission = "delete_manufacturer"
	PermViewProductHistory    Permission = "view_product_history"
	PermCreateProductHistory  Permission = "create_product_history"
	PermAdminDashboard        Permission = "admin_dashboard"
	PermManufacturerDashboard Permission = "manufacturer_dashboard"
	PermVerifyProduct         Permission = "verify_product"
)

// AllPermissions lists every known permission; the admin role receives the
// full set.
var AllPermissions = []Permission{
	PermViewProduct, PermCreateProduct, PermUpdateProduct, PermDeleteProduct,
	PermViewManufacturer, PermCreateManufacturer, PermUpdateManufacturer, PermDeleteManufacturer,
	PermViewProductHistory, PermCreateProductHistory,
	PermAdminDashboard, PermManufacturerDashboard, PermVerifyProduct,
}

// RolePermissions maps each role to its default permission set.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleManufacturer: {
		PermViewProduct, PermCreateProduct, PermUpdateProduct,
		PermViewManufacturer, PermViewProductHistory, PermCreateProductHistory,
		PermManufacturerDashboard, PermVerifyProduct,
	},
	RoleDistributor: {
		PermViewProduct, PermViewManufacturer,
		PermViewProductHistory, PermCreateProductHistory, PermVerifyProduct,
	},
	RoleRetailer: {
		PermViewProduct, PermViewManufacturer,
		PermViewProductHistory, PermCreateProductHistory, PermVerifyProduct,
	},
	RoleConsumer: {
		PermViewProduct, PermViewProductHistory, PermVerifyProduct,
	},
	RoleGuest: {
		PermViewProduct, PermVerifyProduct,
	},
}

// DefaultPermissions returns the default permission set for a role. The
// returned slice is a copy so callers cannot mutate the table.
func DefaultPermissions(r Role) []Permission {
	defaults := RolePermissions[r]
	out := make([]Permission, len(defaults))
	copy(out, defaults)
	return out
}

// User is an account record as held by the store. PasswordHash holds a
// bcrypt digest, never the plaintext; handlers build separate response
// types so the hash is stripped at the boundary and never serialized.
//
// Fields:
//  ID              – primary identifier, assigned by the store.
//  Username        – unique login name.
//  PasswordHash    – bcrypt hash of the password.
//  CompanyName     – company name for trade roles (empty otherwise).
//  Role            – one of the Role constants.
//  Permissions     – effective permission tags, defaulted from the role.
//  WalletAddress   – optional wallet address used for wallet login.
//  Email           – optional contact email.
//  PhoneNumber     – optional contact phone.
//  ProfileImageURL – optional avatar URL.
//  IsVerified      – whether the account passed manual verification.
//  LastLogin       – set on each successful password login (nil before).
//  CreatedAt       – timestamp of creation.
//  UpdatedAt       – timestamp of last update (nil when never updated).
type User struct {
	ID              uint64
	Username        string
	PasswordHash    string
	CompanyName     string
	Role            Role
	Permissions     []Permission
	WalletAddress   string
	Email           string
	PhoneNumber     string
	ProfileImageURL string
	IsVerified      bool
	LastLogin       *time.Time
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
