package dto

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	Current string `json:"current"`
	New     string `json:"new" validate:"required"`
	Confirm string `json:"confirm"`
}

type ProfileRequest struct {
	Name      string `json:"name"`
	Reg       string `json:"reg"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	PublicBio string `json:"publicBio"`
}

type ProfileResponse struct {
	Name      string `json:"name"`
	Reg       string `json:"reg"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	PublicBio string `json:"publicBio"`
}

type HolidaysRequest struct {
	Holidays []string `json:"holidays"`
}

type SettingsResponse struct {
	Pro      ProfileResponse `json:"pro"`
	Holidays []string        `json:"holidays"`
}

// WipeRequest guards the irreversible full wipe behind an explicit
// confirmation phrase.
type WipeRequest struct {
	Confirm string `json:"confirm" validate:"required"`
}
