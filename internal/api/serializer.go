package api

import (
	"github.com/lindenshop/storefront-api/internal/api/shared"
	"github.com/lindenshop/storefront-api/internal/domain"
)

// serializeProfile projects a user onto the wire format, conditioned on
// who is looking. Email is visible only to the owner and admins; the
// password hash never leaves the server. Default addresses are flattened
// into the profile under billing_/delivery_ key prefixes.
func serializeProfile(
	user *domain.User,
	customer *domain.Customer,
	billing, delivery *domain.Address,
	viewer shared.Identity,
) map[string]interface{} {
	out := map[string]interface{}{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"phone":      emptyAsNull(user.Phone),
		"fax":        emptyAsNull(user.Fax),
		"company":    emptyAsNull(user.Company),
		"gender":     user.Gender,
		"birth_date": user.BirthDate,
		"active":     user.Active,
		"created_at": user.CreatedAt,
	}

	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	out["roles"] = roles

	if viewer.Admin || viewer.UserID == user.ID {
		out["email"] = user.Email
	}

	if customer != nil {
		out["customer_id"] = customer.ID
		out["notes"] = emptyAsNull(customer.Notes)
	}
	flattenAddress(out, "billing_", billing)
	flattenAddress(out, "delivery_", delivery)

	return out
}

// flattenAddress copies the address fields into out under the given key
// prefix, matching the original flat profile payload.
func flattenAddress(out map[string]interface{}, prefix string, addr *domain.Address) {
	if addr == nil {
		return
	}
	out[prefix+"address_id"] = addr.ID
	out[prefix+"country_id"] = addr.CountryID
	out[prefix+"city"] = addr.City
	out[prefix+"street"] = addr.Street
	out[prefix+"apartment"] = emptyAsNull(addr.Apartment)
	out[prefix+"zip_code"] = addr.ZipCode
	out[prefix+"first_name"] = emptyAsNull(addr.FirstName)
	out[prefix+"last_name"] = emptyAsNull(addr.LastName)
	out[prefix+"company"] = emptyAsNull(addr.Company)
	out[prefix+"phone"] = emptyAsNull(addr.Phone)
}

// emptyAsNull renders optional text fields as JSON null instead of "".
func emptyAsNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
