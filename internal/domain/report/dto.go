package report

type RecordEntry struct {
	// Time is the local wall clock time, HH:MM:SS.
	Time string `json:"time"`
	Type string `json:"type"`
}

type DailySummaryResponse struct {
	Date               string        `json:"date"`
	UserID             string        `json:"user_id"`
	UserName           string        `json:"user_name"`
	Records            []RecordEntry `json:"records"`
	TotalWorkedMinutes int           `json:"total_worked_minutes"`
	ExpectedMinutes    int           `json:"expected_minutes"`
	BalanceMinutes     int           `json:"balance_minutes"`
	Worked             string        `json:"worked"`
	Balance            string        `json:"balance"`
	Pending            bool          `json:"pending"`
}

type BankOfHoursResponse struct {
	UserID              string `json:"user_id"`
	UserName            string `json:"user_name"`
	TotalBalanceMinutes int    `json:"total_balance_minutes"`
	TotalBalance        string `json:"total_balance"`
	Days                int    `json:"days"`
}
