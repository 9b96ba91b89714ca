package model

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type PackageCount struct {
	PackageName string `json:"packageName"`
	Count       int64  `json:"count"`
}

type Growth struct {
	ThisMonth int64   `json:"thisMonth"`
	LastMonth int64   `json:"lastMonth"`
	Percent   float64 `json:"percent"`
}

type GuestTotals struct {
	Guests    int64 `json:"guests"`
	Attending int64 `json:"attending"`
	Declined  int64 `json:"declined"`
	Pending   int64 `json:"pending"`
}

type GalleryTotals struct {
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
	Views     int64 `json:"views"`
	Likes     int64 `json:"likes"`
}

type Analytics struct {
	EventsByStatus     []StatusCount  `json:"eventsByStatus"`
	EventsPerMonth     []MonthCount   `json:"eventsPerMonth"`
	PackagePopularity  []PackageCount `json:"packagePopularity"`
	ConfirmedBudget    float64        `json:"confirmedBudget"`
	EventGrowth        Growth         `json:"eventGrowth"`
	Guests             GuestTotals    `json:"guests"`
	Gallery            GalleryTotals  `json:"gallery"`
	UsersByRole        []StatusCount  `json:"usersByRole"`
	UnreadChatMessages int64          `json:"unreadChatMessages"`
}
