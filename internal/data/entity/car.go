package entity

// CarChips are the short spec badges rendered on car cards.
type CarChips struct {
	Seats        int    `db:"chip_seats" json:"seats"`
	Horsepower   int    `db:"chip_horsepower" json:"horsepower"`
	Transmission string `db:"chip_transmission" json:"transmission"`
	Fuel         string `db:"chip_fuel" json:"fuel"`
}

type CarSpecs struct {
	Acceleration0To100Sec float64 `db:"spec_acceleration" json:"acceleration_0_100_sec"`
	Drivetrain            string  `db:"spec_drivetrain" json:"drivetrain"`
	TransmissionDetail    string  `db:"spec_transmission_detail" json:"transmission_detail"`
	Engine                string  `db:"spec_engine" json:"engine"`
}

type GalleryImage struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Car struct {
	Base
	Make         string         `db:"make"`
	Model        string         `db:"model"`
	Trim         string         `db:"trim"`
	Type         string         `db:"type"`
	Slug         string         `db:"slug"`
	Badge        string         `db:"badge"`
	IsFeatured   bool           `db:"is_featured"`
	IsActive     bool           `db:"is_active"`
	PricePerDay  float64        `db:"price_per_day"`
	Currency     string         `db:"currency"`
	ThumbnailURL string         `db:"thumbnail_url"`
	Gallery      []GalleryImage `db:"gallery"`
	Chips        CarChips
	Specs        CarSpecs
}

// Title renders "Make Model" for display, with a generic fallback for
// incomplete records.
func (c *Car) Title() string {
	out := c.Make
	if c.Model != "" {
		if out != "" {
			out += " "
		}
		out += c.Model
	}
	if out == "" {
		return "Vehicle"
	}
	return out
}
