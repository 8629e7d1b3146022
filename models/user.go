package models

type UserRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	EmployeeID string `json:"employeeId,omitempty"`
	NumericID  string `json:"numericId,omitempty"`
}

type UserQuery struct {
	Q    string
	Team string
}

type TokenReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenRes struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
