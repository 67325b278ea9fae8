package models

// HouseholdContact is a member address used for notifications
type HouseholdContact struct {
	HouseholdID int64  `json:"household_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}
