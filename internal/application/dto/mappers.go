package dto

import "github.com/jhoicas/sisbar-inventario/internal/domain/entity"

// ToProductResponse convierte la entidad a su representación de salida.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Barcode:       p.Barcode,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		SupplierID:    p.SupplierID,
		Quantity:      p.Quantity,
		MinQuantity:   p.MinQuantity,
		Unit:          string(p.Unit),
		PurchasePrice: p.PurchasePrice,
		StockValue:    p.StockValue(),
		Location:      p.Location,
		State:         string(p.State),
		Active:        p.Active,
		LastExitAt:    p.LastExitAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		Notes:          m.Notes,
		UserID:         m.UserID,
		CreatedAt:      m.CreatedAt,
	}
}

func ToAlertResponse(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		ProductName: a.ProductName,
		Type:        string(a.Type),
		Message:     a.Message,
		GeneratedAt: a.GeneratedAt,
		Read:        a.Read,
		ReadAt:      a.ReadAt,
		Resolved:    a.Resolved,
		ResolvedAt:  a.ResolvedAt,
	}
}

func ToActivityResponse(r *entity.ActivityRecord) ActivityResponse {
	return ActivityResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		Kind:        string(r.Kind),
		Description: r.Description,
		ClientIP:    r.ClientIP,
		CreatedAt:   r.CreatedAt,
	}
}

func ToCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Icon:        c.Icon,
		Color:       c.Color,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}

func ToSubcategoryResponse(s *entity.Subcategory) SubcategoryResponse {
	return SubcategoryResponse{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
	}
}

func ToSupplierResponse(s *entity.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		City:      s.City,
		Country:   s.Country,
		Website:   s.Website,
		Rating:    s.Rating,
		Notes:     s.Notes,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToUserResponse nunca expone PasswordHash.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		FullName:   u.FullName(),
		Role:       u.Role,
		Phone:      u.Phone,
		Document:   u.Document,
		Approved:   u.Approved,
		ApprovedAt: u.ApprovedAt,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
