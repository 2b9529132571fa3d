// Package schema defines the accepted shape of every external input and
// validates it before anything reaches the store. Validation is pure: each
// Validate function normalizes the request in place and returns the full
// list of violated fields, never just the first one.
package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/authenticore/registry/internal/model"
)

var v = validator.New()

func init() {
	// Report field names as their json tags so error lists match the
	// request body the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// FieldError describes a single violated constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword"`
	CompanyName     string `json:"companyName"`
	Email           string `json:"email" validate:"omitempty,email"`
	PhoneNumber     string `json:"phoneNumber"`
	Role            string `json:"role" validate:"required"`
	WalletAddress   string `json:"walletAddress"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProductRequest is the body of POST /api/products. ManufacturerID is an
// acknowledged demo shortcut: it may come from the body and defaults to 1
// when absent, since no session mechanism attributes products to callers.
type ProductRequest struct {
	ProductName       string  `json:"productName" validate:"required,min=3"`
	ManufacturerName  string  `json:"manufacturerName" validate:"required,min=2"`
	ManufacturerID    uint64  `json:"manufacturerId"`
	SerialNumber      string  `json:"serialNumber"`
	ManufacturingDate *string `json:"manufacturingDate"`
	ExpiryDate        *string `json:"expiryDate"`
	Category          string  `json:"category"`
	Description       string  `json:"description"`
}

// HistoryRequest is the body of POST /api/products/:id/history. Data is an
// arbitrary payload passed through unchecked; Timestamp is deliberately
// not accepted here, the store assigns it.
type HistoryRequest struct {
	Event string         `json:"event" validate:"required"`
	Data  map[string]any `json:"data"`
}

// ValidateRegister normalizes and validates a registration request. Beyond
// the tag checks it enforces the cross-field rules: confirm-password must
// match, the role must be self-assignable, and trade roles must carry a
// company name.
func ValidateRegister(req *RegisterRequest) []FieldError {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))

	errs := structErrors(req)
	if req.Password != "" && req.Password != req.ConfirmPassword {
		errs = append(errs, FieldError{Field: "confirmPassword", Message: "Passwords do not match"})
	}
	role := model.Role(req.Role)
	if req.Role != "" && !model.SelfAssignable(role) {
		errs = append(errs, FieldError{Field: "role", Message: "Role must be one of manufacturer, distributor, retailer, consumer"})
	}
	if model.TradeRole(role) && strings.TrimSpace(req.CompanyName) == "" {
		errs = append(errs, FieldError{Field: "companyName", Message: "Company name is required for this role"})
	}
	return errs
}

// ValidateLogin checks that both credentials are present.
func ValidateLogin(req *LoginRequest) []FieldError {
	req.Username = strings.TrimSpace(req.Username)
	return structErrors(req)
}

// ValidateProduct validates a product registration request.
func ValidateProduct(req *ProductRequest) []FieldError {
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.ManufacturerName = strings.TrimSpace(req.ManufacturerName)
	return structErrors(req)
}

// ValidateHistory validates a history-append request.
func ValidateHistory(req *HistoryRequest) []FieldError {
	req.Event = strings.TrimSpace(req.Event)
	return structErrors(req)
}

// structErrors runs tag validation and converts every violation into a
// FieldError with a human-readable message.
func structErrors(req any) []FieldError {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: "invalid input"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "email":
		return "Please enter a valid email"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
