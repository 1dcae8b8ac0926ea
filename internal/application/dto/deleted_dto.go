package dto

// DeletedItemsResponse registros desactivados por tipo, para restaurarlos desde un solo panel.
type DeletedItemsResponse struct {
	Products   []ProductResponse  `json:"products"`
	Categories []CategoryResponse `json:"categories"`
	Suppliers  []SupplierResponse `json:"suppliers"`
	Users      []UserResponse     `json:"users"`
}
