package domain

// DailyCount is one day's donation tally, Date formatted YYYY-MM-DD.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Report aggregates donation activity for the admin dashboard.
type Report struct {
	TotalDonors        int            `json:"totalDonors"`
	TotalOrganizations int            `json:"totalOrganizations"`
	TotalDonations     int            `json:"totalDonations"`
	CategoryCounts     map[string]int `json:"categoryCounts"`
	DonationData       []DailyCount   `json:"donationData"`
}
