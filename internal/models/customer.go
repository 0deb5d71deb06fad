package models

// Membership levels assigned to customers, lowest to highest.
const (
	MembershipBronze   = "Bronze"
	MembershipSilver   = "Silver"
	MembershipGold     = "Gold"
	MembershipPlatinum = "Platinum"
)

// MembershipLevels lists all levels in ascending order.
var MembershipLevels = []string{
	MembershipBronze,
	MembershipSilver,
	MembershipGold,
	MembershipPlatinum,
}

// Customer is the profile returned by the customer directory.
// Dates are calendar dates in YYYY-MM-DD form. A fetched profile is
// never mutated; it lives only for the duration of one inquiry.
type Customer struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	MembershipLevel  string `json:"membershipLevel"`
	RegistrationDate string `json:"registrationDate"`
	LastPurchaseDate string `json:"lastPurchaseDate"`
}
