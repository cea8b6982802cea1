package dto

type MenuItemDTO struct {
	Key      string        `json:"key"`
	Title    string        `json:"title"`
	Path     string        `json:"path,omitempty"`
	Icon     string        `json:"icon,omitempty"`
	Children []MenuItemDTO `json:"children,omitempty"`
}

type MenuDTO struct {
	Role  string        `json:"role"`
	Items []MenuItemDTO `json:"items"`
}
