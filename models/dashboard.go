package models

// MonthlyCount is one month's worth of a counted metric.
type MonthlyCount struct {
	Month string `bson:"month" json:"month"`
	Count int64  `bson:"count" json:"count"`
}

// MonthlyAmount is one month's worth of a summed money metric.
type MonthlyAmount struct {
	Month  string  `bson:"month" json:"month"`
	Amount float64 `bson:"amount" json:"amount"`
}

// RevenueSlice is completed-booking revenue attributed to one service.
type RevenueSlice struct {
	Name  string  `bson:"name" json:"name"`
	Value float64 `bson:"value" json:"value"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	TotalUsers       int64           `json:"totalUsers"`
	TotalServices    int64           `json:"totalServices"`
	TotalBookings    int64           `json:"totalBookings"`
	TotalRevenue     float64         `json:"totalRevenue"`
	BookingsMonthly  []MonthlyCount  `json:"bookingsMonthly"`
	RevenueMonthly   []MonthlyAmount `json:"revenueMonthly"`
	UsersGrowth      []MonthlyCount  `json:"usersGrowth"`
	RevenueByService []RevenueSlice  `json:"revenueByService"`
	RecentBookings   []Booking       `json:"recentBookings"`
}
