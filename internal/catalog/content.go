package catalog

import "regexp"

// Highlight is one hero selling point.
type Highlight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Hero struct {
	Tagline    string      `json:"tagline"`
	Highlights []Highlight `json:"highlights"`
}

type About struct {
	Subtitle string   `json:"subtitle"`
	Story    []string `json:"story"`
	Approach []string `json:"approach"`
}

type Contact struct {
	Address string   `json:"address"`
	Phone   string   `json:"phone"`
	Email   string   `json:"email"`
	Hours   []string `json:"hours"`
}

// SiteContent is everything the page shell renders outside the menu.
type SiteContent struct {
	Hero    Hero    `json:"hero"`
	About   About   `json:"about"`
	Contact Contact `json:"contact"`
}

var content = SiteContent{
	Hero: Hero{
		Tagline: "Authentic Chinese Cuisine Crafted with Passion and Tradition",
		Highlights: []Highlight{
			{Icon: "🥢", Title: "Authentic Flavors", Description: "Traditional recipes passed down through generations"},
			{Icon: "🍜", Title: "Fresh Ingredients", Description: "Locally sourced, prepared daily with care"},
			{Icon: "🏮", Title: "Warm Atmosphere", Description: "Dine-in and takeout available"},
		},
	},
	About: About{
		Subtitle: "A journey through authentic Chinese culinary traditions",
		Story: []string{
			"Second Bowl was founded with a simple mission: to bring the authentic flavors of traditional Chinese cuisine to our community. Our name reflects the universal experience of enjoying a meal so delicious that you immediately want a second bowl.",
			"Every dish we serve is crafted with recipes that have been perfected over generations, using techniques and flavor combinations that honor the rich culinary heritage of China.",
		},
		Approach: []string{
			"We believe that great food starts with great ingredients. That's why we source the freshest vegetables, premium meats, and authentic spices to ensure every dish meets our high standards.",
			"Our chefs bring decades of experience and a deep passion for Chinese cooking. From hand-pulled noodles to perfectly steamed dumplings, every element is prepared with meticulous attention to detail.",
		},
	},
	Contact: Contact{
		Address: "14-B Main Boulevard, Gulberg III, Lahore",
		Phone:   "042-3575-0123",
		Email:   "hello@secondbowl.pk",
		Hours: []string{
			"Monday - Thursday: 11:00 AM - 9:00 PM",
			"Friday - Saturday: 11:00 AM - 10:00 PM",
			"Sunday: 12:00 PM - 8:00 PM",
		},
	},
}

// Content returns the static site content.
func Content() SiteContent {
	return content
}

var hoursRangePattern = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*[AP]M\s*[-–]\s*\d{1,2}:\d{2}\s*[AP]M)`)

// HoursSummary derives a single-line hours badge from the contact hours.
func HoursSummary() string {
	hours := content.Contact.Hours
	if len(hours) == 0 {
		return "See contact for hours"
	}
	if match := hoursRangePattern.FindString(hours[0]); match != "" {
		return "Daily " + match
	}
	return hours[0]
}
