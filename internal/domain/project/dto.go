package project

// DTO (API Layer; Request schema) - BotProject minus server-assigned fields
type Resource struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Code         string   `json:"code"`
	Dependencies []string `json:"dependencies"`
}
