package seatlayout

type BusType string

const (
	BusTypeEconomy   BusType = "Economy"
	BusTypeStandard  BusType = "Standard"
	BusTypeBusiness  BusType = "Business"
	BusTypeExecutive BusType = "Executive"
	BusTypeVIP       BusType = "VIP"
	BusTypeLuxury    BusType = "Luxury"
	BusTypeSleeper   BusType = "Sleeper"
)

func (t BusType) Valid() bool {
	switch t {
	case BusTypeEconomy, BusTypeStandard, BusTypeBusiness, BusTypeExecutive,
		BusTypeVIP, BusTypeLuxury, BusTypeSleeper:
		return true
	}
	return false
}

// FlatSeat is the persisted form of a seat. The visual coordinates and the
// walkway flag are optional so that records written before they existed can
// still be read.
type FlatSeat struct {
	ID           string   `json:"id"`
	Row          int      `json:"row"`
	Column       int      `json:"column"`
	Type         SeatType `json:"type,omitempty"`
	Available    bool     `json:"available"`
	Label        string   `json:"label"`
	VisualRow    *int     `json:"visual_row,omitempty"`
	VisualColumn *int     `json:"visual_column,omitempty"`
	IsWalkway    *bool    `json:"is_walkway,omitempty"`
}

type Layout struct {
	Rows    int        `json:"rows"`
	Columns int        `json:"columns"`
	Pattern Pattern    `json:"arrangement_pattern"`
	Seats   []FlatSeat `json:"seats"`
}

// Configuration is the body exchanged with the bus configuration API.
type Configuration struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	BusType     BusType  `json:"bus_type"`
	TotalSeats  int      `json:"total_seats"`
	SeatLayout  Layout   `json:"seat_layout"`
	Amenities   []string `json:"amenities"`
}
