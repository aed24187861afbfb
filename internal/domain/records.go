package domain

import "time"

// RoyaltyTransaction is a single royalty earning on a licensed design.
// Amount is always Qty*Rate rounded to cents.
type RoyaltyTransaction struct {
	ID       string        `json:"id"        yaml:"id"`
	Date     time.Time     `json:"date"      yaml:"date"`
	Design   string        `json:"design"    yaml:"design"`
	DesignID string        `json:"design_id" yaml:"design_id"`
	Source   string        `json:"source"    yaml:"source"`
	Qty      int           `json:"qty"       yaml:"qty"`
	Rate     float64       `json:"rate"      yaml:"rate"`
	Amount   float64       `json:"amount"    yaml:"amount"`
	Status   RoyaltyStatus `json:"status"    yaml:"status"`
}

// PayoutTransaction is a transfer of available earnings to a payout method.
type PayoutTransaction struct {
	ID        string       `json:"id"`
	Date      time.Time    `json:"date"`
	Amount    float64      `json:"amount"`
	Method    string       `json:"method"`
	Reference string       `json:"reference"`
	Status    PayoutStatus `json:"status"`
}

// ProductIdea is a trend-driven suggestion shown to makers. Margin and
// TimeToMarket are display strings ("32-45%", "2 weeks"); sorting extracts
// their magnitudes.
type ProductIdea struct {
	ID           string      `json:"id"             yaml:"id"`
	Title        string      `json:"title"          yaml:"title"`
	Category     string      `json:"category"       yaml:"category"`
	Description  string      `json:"description"    yaml:"description"`
	DemandScore  int         `json:"demand_score"   yaml:"demand_score"`
	Competition  Competition `json:"competition"    yaml:"competition"`
	Margin       string      `json:"margin"         yaml:"margin"`
	TimeToMarket string      `json:"time_to_market" yaml:"time_to_market"`
	Tags         []string    `json:"tags"           yaml:"tags"`
}

// PayoutMethod is the destination for payouts. Only the masked form of the
// account is ever returned to clients.
type PayoutMethod struct {
	Role          string    `json:"role"`
	Type          string    `json:"type"`
	AccountHolder string    `json:"account_holder,omitempty"`
	Masked        string    `json:"masked"`
	Address       *Address  `json:"address,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Address is a postal address.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Location is where a maker operates from.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Machine is a piece of production equipment a maker owns.
type Machine struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	BuildVolume string `json:"build_volume,omitempty"`
}

// ShippingZone is a region the maker ships to.
type ShippingZone struct {
	Region   string  `json:"region"`
	Days     int     `json:"days"`
	BaseCost float64 `json:"base_cost"`
}

// ProfileData is the maker capability profile. There is one per user.
type ProfileData struct {
	DisplayName   string         `json:"display_name"`
	Bio           string         `json:"bio,omitempty"`
	Location      Location       `json:"location"`
	Machines      []Machine      `json:"machines"`
	Materials     []string       `json:"materials"`
	ShippingZones []ShippingZone `json:"shipping_zones"`
	LeadTimeDays  int            `json:"lead_time_days"`
	MonthlyUnits  int            `json:"monthly_units"`
	AcceptsCustom bool           `json:"accepts_custom"`
}

// DefaultProfile is returned for users who never saved a profile.
func DefaultProfile() ProfileData {
	return ProfileData{
		Machines:      []Machine{},
		Materials:     []string{},
		ShippingZones: []ShippingZone{},
		LeadTimeDays:  7,
	}
}
