package dto

type DashboardSummaryResponse struct {
	Properties       int64            `json:"properties"`
	Guests           int64            `json:"guests"`
	DepositsByStatus map[string]int64 `json:"deposits_by_status"`
	TotalHeldAmount  int64            `json:"total_held_amount"`
	TotalRefunded    int64            `json:"total_refunded"`
	TotalDeposits    int64            `json:"total_deposits"`
}
