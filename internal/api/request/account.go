package request

type CreateAccountRequest struct {
	Name   string `json:"name"`
	Broker string `json:"broker,omitempty"`
}

type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	Broker   *string `json:"broker,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}
