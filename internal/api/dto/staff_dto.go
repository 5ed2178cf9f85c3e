package dto

// StaffResponse is one roster member.
type StaffResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
}

// RosterImportResponse reports a bulk import.
type RosterImportResponse struct {
	Added   int             `json:"added"`
	Members []StaffResponse `json:"members"`
}
