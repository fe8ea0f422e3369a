package postgres

import (
	"solar/internal/domain/entity"
	"solar/internal/infra/persistence/model"

	"gorm.io/datatypes"
)

func toSeoDomain(m model.SeoMeta) entity.SeoMeta {
	return entity.SeoMeta{Title: m.Title, Description: m.Description, Keywords: m.Keywords}
}

func fromSeoDomain(s entity.SeoMeta) datatypes.JSONType[model.SeoMeta] {
	return datatypes.NewJSONType(model.SeoMeta{Title: s.Title, Description: s.Description, Keywords: s.Keywords})
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Name:         m.Name,
		Role:         m.Role,
		Phone:        m.Phone,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		Base:         model.Base{ID: u.ID, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
		Email:        entity.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Name:         u.Name,
		Role:         u.Role,
		Phone:        u.Phone,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
	}
}

func toRoleDomain(m *model.RoleModel) *entity.Role {
	stored := m.Permissions.Data()
	perms := make(map[entity.Resource]entity.Grant, len(stored))
	for res, g := range stored {
		perms[entity.Resource(res)] = entity.Grant{Create: g.Create, Read: g.Read, Update: g.Update, Delete: g.Delete}
	}

	return &entity.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: perms,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromRoleDomain(r *entity.Role) *model.RoleModel {
	perms := make(map[string]model.RoleGrant, len(r.Permissions))
	for res, g := range r.Permissions {
		perms[string(res)] = model.RoleGrant{Create: g.Create, Read: g.Read, Update: g.Update, Delete: g.Delete}
	}

	return &model.RoleModel{
		Base:        model.Base{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
		Name:        r.Name,
		Description: r.Description,
		Permissions: datatypes.NewJSONType(perms),
	}
}

func toCustomerDomain(m *model.CustomerModel) *entity.Customer {
	return &entity.Customer{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		CompanyName: m.CompanyName,
		GSTNumber:   m.GSTNumber,
		Segment:     entity.Segment(m.Segment),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromCustomerDomain(c *entity.Customer) *model.CustomerModel {
	return &model.CustomerModel{
		Base:        model.Base{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		Name:        c.Name,
		Email:       entity.NormalizeEmail(c.Email),
		Phone:       c.Phone,
		Address:     c.Address,
		CompanyName: c.CompanyName,
		GSTNumber:   c.GSTNumber,
		Segment:     string(c.Segment),
		IsActive:    c.IsActive,
	}
}

func toCategoryDomain(m *model.CategoryModel) *entity.Category {
	return &entity.Category{
		ID:           m.ID,
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		Image:        m.Image,
		VideoURL:     m.VideoURL,
		ParentID:     m.ParentID,
		SeoTags:      toSeoDomain(m.SeoTags.Data()),
		IsActive:     m.IsActive,
		DisplayOrder: m.DisplayOrder,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromCategoryDomain(c *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		Base:         model.Base{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		Image:        c.Image,
		VideoURL:     c.VideoURL,
		ParentID:     c.ParentID,
		SeoTags:      fromSeoDomain(c.SeoTags),
		IsActive:     c.IsActive,
		DisplayOrder: c.DisplayOrder,
	}
}

func toProductDomain(m *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:             m.ID,
		Name:           m.Name,
		Slug:           m.Slug,
		Description:    m.Description,
		CategoryID:     m.CategoryID,
		Price:          m.Price,
		SalePrice:      m.SalePrice,
		Images:         nonNilStrings(m.Images.Data()),
		Videos:         nonNilStrings(m.Videos.Data()),
		Stock:          m.Stock,
		SKU:            m.SKU,
		Specifications: m.Specifications.Data(),
		Rating:         m.Rating,
		ReviewCount:    m.ReviewCount,
		SeoTags:        toSeoDomain(m.SeoTags.Data()),
		IsActive:       m.IsActive,
		DisplayOrder:   m.DisplayOrder,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func fromProductDomain(p *entity.Product) *model.ProductModel {
	specs := p.Specifications
	if specs == nil {
		specs = map[string]any{}
	}

	return &model.ProductModel{
		Base:           model.Base{ID: p.ID, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt},
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		Price:          p.Price,
		SalePrice:      p.SalePrice,
		Images:         datatypes.NewJSONType(nonNilStrings(p.Images)),
		Videos:         datatypes.NewJSONType(nonNilStrings(p.Videos)),
		Stock:          p.Stock,
		SKU:            p.SKU,
		Specifications: datatypes.NewJSONType(specs),
		Rating:         p.Rating,
		ReviewCount:    p.ReviewCount,
		SeoTags:        fromSeoDomain(p.SeoTags),
		IsActive:       p.IsActive,
		DisplayOrder:   p.DisplayOrder,
	}
}

func toLineItemsDomain(items []model.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Discount:  it.Discount,
		})
	}

	return out
}

func fromLineItemsDomain(items []entity.LineItem) datatypes.JSONType[[]model.LineItem] {
	out := make([]model.LineItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Discount:  it.Discount,
		})
	}

	return datatypes.NewJSONType(out)
}

func toQuoteDomain(m *model.QuoteModel) *entity.Quote {
	return &entity.Quote{
		ID:              m.ID,
		QuoteNumber:     m.QuoteNumber,
		CustomerID:      m.CustomerID,
		Items:           toLineItemsDomain(m.Items.Data()),
		Subtotal:        m.Subtotal,
		Tax:             m.Tax,
		TotalAmount:     m.TotalAmount,
		Status:          entity.QuoteStatus(m.Status),
		ValidUntil:      m.ValidUntil,
		SentAt:          m.SentAt,
		AcceptedAt:      m.AcceptedAt,
		RejectedAt:      m.RejectedAt,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromQuoteDomain(q *entity.Quote) *model.QuoteModel {
	return &model.QuoteModel{
		Base:            model.Base{ID: q.ID, CreatedAt: q.CreatedAt, UpdatedAt: q.UpdatedAt},
		QuoteNumber:     q.QuoteNumber,
		CustomerID:      q.CustomerID,
		Items:           fromLineItemsDomain(q.Items),
		Subtotal:        q.Subtotal,
		Tax:             q.Tax,
		TotalAmount:     q.TotalAmount,
		Status:          string(q.Status),
		ValidUntil:      q.ValidUntil,
		SentAt:          q.SentAt,
		AcceptedAt:      q.AcceptedAt,
		RejectedAt:      q.RejectedAt,
		RejectionReason: q.RejectionReason,
	}
}

func toOrderDomain(m *model.OrderModel) *entity.Order {
	return &entity.Order{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		CustomerID:      m.CustomerID,
		QuoteID:         m.QuoteID,
		Items:           toLineItemsDomain(m.Items.Data()),
		Subtotal:        m.Subtotal,
		Tax:             m.Tax,
		TotalAmount:     m.TotalAmount,
		PaymentStatus:   entity.PaymentStatus(m.PaymentStatus),
		OrderStatus:     entity.OrderStatus(m.OrderStatus),
		InvoiceID:       m.InvoiceID,
		ShippingAddress: m.ShippingAddress,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromOrderDomain(o *entity.Order) *model.OrderModel {
	return &model.OrderModel{
		Base:            model.Base{ID: o.ID, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt},
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		QuoteID:         o.QuoteID,
		Items:           fromLineItemsDomain(o.Items),
		Subtotal:        o.Subtotal,
		Tax:             o.Tax,
		TotalAmount:     o.TotalAmount,
		PaymentStatus:   string(o.PaymentStatus),
		OrderStatus:     string(o.OrderStatus),
		InvoiceID:       o.InvoiceID,
		ShippingAddress: o.ShippingAddress,
		Notes:           o.Notes,
	}
}

func toInvoiceDomain(m *model.InvoiceModel) *entity.Invoice {
	stored := m.Items.Data()
	items := make([]entity.InvoiceItem, 0, len(stored))
	for _, it := range stored {
		items = append(items, entity.InvoiceItem{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Tax:         it.Tax,
			Total:       it.Total,
		})
	}

	return &entity.Invoice{
		ID:            m.ID,
		InvoiceNumber: m.InvoiceNumber,
		OrderID:       m.OrderID,
		CustomerID:    m.CustomerID,
		IssueDate:     m.IssueDate,
		DueDate:       m.DueDate,
		PaidDate:      m.PaidDate,
		Items:         items,
		Subtotal:      m.Subtotal,
		Tax:           m.Tax,
		TotalAmount:   m.TotalAmount,
		PaymentStatus: entity.InvoicePaymentStatus(m.PaymentStatus),
		PDFURL:        m.PDFURL,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromInvoiceDomain(inv *entity.Invoice) *model.InvoiceModel {
	items := make([]model.InvoiceItem, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, model.InvoiceItem{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Tax:         it.Tax,
			Total:       it.Total,
		})
	}

	return &model.InvoiceModel{
		Base:          model.Base{ID: inv.ID, CreatedAt: inv.CreatedAt, UpdatedAt: inv.UpdatedAt},
		InvoiceNumber: inv.InvoiceNumber,
		OrderID:       inv.OrderID,
		CustomerID:    inv.CustomerID,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		PaidDate:      inv.PaidDate,
		Items:         datatypes.NewJSONType(items),
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		TotalAmount:   inv.TotalAmount,
		PaymentStatus: string(inv.PaymentStatus),
		PDFURL:        inv.PDFURL,
	}
}

func toBlogDomain(m *model.BlogModel) *entity.Blog {
	return &entity.Blog{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Excerpt:     m.Excerpt,
		Content:     m.Content,
		CoverImage:  m.CoverImage,
		Author:      m.Author,
		Tags:        nonNilStrings(m.Tags.Data()),
		IsPublished: m.IsPublished,
		PublishedAt: m.PublishedAt,
		SeoTags:     toSeoDomain(m.SeoTags.Data()),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromBlogDomain(b *entity.Blog) *model.BlogModel {
	return &model.BlogModel{
		Base:        model.Base{ID: b.ID, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt},
		Title:       b.Title,
		Slug:        b.Slug,
		Excerpt:     b.Excerpt,
		Content:     b.Content,
		CoverImage:  b.CoverImage,
		Author:      b.Author,
		Tags:        datatypes.NewJSONType(nonNilStrings(b.Tags)),
		IsPublished: b.IsPublished,
		PublishedAt: b.PublishedAt,
		SeoTags:     fromSeoDomain(b.SeoTags),
	}
}

func toFAQDomain(m *model.FAQModel) *entity.FAQ {
	return &entity.FAQ{
		ID:           m.ID,
		Question:     m.Question,
		Answer:       m.Answer,
		Category:     m.Category,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromFAQDomain(f *entity.FAQ) *model.FAQModel {
	return &model.FAQModel{
		Base:         model.Base{ID: f.ID, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt},
		Question:     f.Question,
		Answer:       f.Answer,
		Category:     f.Category,
		DisplayOrder: f.DisplayOrder,
		IsActive:     f.IsActive,
	}
}

func toCarouselDomain(m *model.CarouselItemModel) *entity.CarouselItem {
	return &entity.CarouselItem{
		ID:           m.ID,
		Title:        m.Title,
		Subtitle:     m.Subtitle,
		Image:        m.Image,
		Link:         m.Link,
		ButtonText:   m.ButtonText,
		DisplayOrder: m.DisplayOrder,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromCarouselDomain(c *entity.CarouselItem) *model.CarouselItemModel {
	return &model.CarouselItemModel{
		Base:         model.Base{ID: c.ID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt},
		Title:        c.Title,
		Subtitle:     c.Subtitle,
		Image:        c.Image,
		Link:         c.Link,
		ButtonText:   c.ButtonText,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

func toSeoTagDomain(m *model.SeoTagModel) *entity.SeoTag {
	return &entity.SeoTag{
		ID:          m.ID,
		Path:        m.Path,
		Title:       m.Title,
		Description: m.Description,
		Keywords:    nonNilStrings(m.Keywords.Data()),
		OGImage:     m.OGImage,
		Canonical:   m.Canonical,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromSeoTagDomain(s *entity.SeoTag) *model.SeoTagModel {
	return &model.SeoTagModel{
		Base:        model.Base{ID: s.ID, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt},
		Path:        s.Path,
		Title:       s.Title,
		Description: s.Description,
		Keywords:    datatypes.NewJSONType(nonNilStrings(s.Keywords)),
		OGImage:     s.OGImage,
		Canonical:   s.Canonical,
	}
}

func toSiteSettingDomain(m *model.SiteSettingModel) *entity.SiteSetting {
	links := m.SocialLinks.Data()
	if links == nil {
		links = map[string]string{}
	}

	return &entity.SiteSetting{
		ID:           m.ID,
		SiteName:     m.SiteName,
		Tagline:      m.Tagline,
		Logo:         m.Logo,
		Favicon:      m.Favicon,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Address:      m.Address,
		SocialLinks:  links,
		FooterText:   m.FooterText,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromSiteSettingDomain(s *entity.SiteSetting) *model.SiteSettingModel {
	links := s.SocialLinks
	if links == nil {
		links = map[string]string{}
	}

	return &model.SiteSettingModel{
		Base:         model.Base{ID: s.ID, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt},
		SiteName:     s.SiteName,
		Tagline:      s.Tagline,
		Logo:         s.Logo,
		Favicon:      s.Favicon,
		ContactEmail: s.ContactEmail,
		ContactPhone: s.ContactPhone,
		Address:      s.Address,
		SocialLinks:  datatypes.NewJSONType(links),
		FooterText:   s.FooterText,
	}
}
