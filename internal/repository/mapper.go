package repository

import (
	"github.com/shopspring/decimal"

	orderResponse "github.com/malchin/market/order/pkg/response"
	productResponse "github.com/malchin/market/product/pkg/response"
	userResponse "github.com/malchin/market/user/pkg/response"
)

func (u User) Response() userResponse.User {
	return userResponse.User{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        string(u.Role),
		PhoneNumber: u.PhoneNumber,
		Location:    u.Location,
		CreatedAt:   u.CreatedAt.Time,
		UpdatedAt:   u.UpdatedAt.Time,
	}
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID,
		HerderID:    p.HerderID,
		HerderName:  p.HerderName,
		Title:       p.Title,
		Description: p.Description,
		Price:       decimal.NewFromBigInt(p.Price.Int, p.Price.Exp),
		Unit:        p.Unit,
		Category:    string(p.Category),
		SubCategory: p.SubCategory,
		Images:      p.Images,
		Quantity:    p.Quantity,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (o Order) Response(items []OrderItem) orderResponse.Order {
	orderItems := make([]orderResponse.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = item.Response()
	}
	return orderResponse.Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		HerderID:        o.HerderID,
		TotalAmount:     decimal.NewFromBigInt(o.TotalAmount.Int, o.TotalAmount.Exp),
		Status:          string(o.Status),
		ContactPhone:    o.ContactPhone,
		DeliveryAddress: o.DeliveryAddress,
		OrderItems:      orderItems,
		CreatedAt:       o.CreatedAt.Time,
		UpdatedAt:       o.UpdatedAt.Time,
	}
}

func (i OrderItem) Response() orderResponse.OrderItem {
	return orderResponse.OrderItem{
		ID:        i.ID,
		ProductID: i.ProductID,
		Title:     i.Title,
		Price:     decimal.NewFromBigInt(i.Price.Int, i.Price.Exp),
		Quantity:  i.Quantity,
	}
}
