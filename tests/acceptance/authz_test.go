package acceptance

import (
	"net/http"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
)

type shopEnvelope struct {
	Shop domain.Shop `json:"shop"`
}

type productEnvelope struct {
	Product domain.Product `json:"product"`
}

func (s *Suite) createShop(cookie *http.Cookie, name string) domain.Shop {
	resp := s.postJSON("/api/v1/shops", dto.CreateShopRequest{Name: name}, cookie)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "shop creation should succeed")

	var env shopEnvelope
	s.decode(resp, &env)
	return env.Shop
}

func (s *Suite) createProduct(cookie *http.Cookie, shopID, name string, priceSatang int64) domain.Product {
	resp := s.postJSON("/api/v1/shops/"+shopID+"/products", dto.CreateProductRequest{
		Name:        name,
		PriceSatang: priceSatang,
		Stock:       10,
	}, cookie)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, "product creation should succeed")

	var env productEnvelope
	s.decode(resp, &env)
	return env.Product
}

func (s *Suite) TestCreateShop_CustomerForbidden() {
	cookie, _ := s.register("Somchai", "12/3", "secret1", "")

	resp := s.postJSON("/api/v1/shops", dto.CreateShopRequest{Name: "Stand"}, cookie)
	defer s.drain(resp)

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestCreateShop_Unauthenticated() {
	resp := s.postJSON("/api/v1/shops", dto.CreateShopRequest{Name: "Stand"}, nil)
	defer s.drain(resp)

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestShops_PublicReads() {
	vendor, _ := s.register("Somchai", "12/3", "secret1", "VENDOR")
	shop := s.createShop(vendor, "Somchai's Fruit Stand")
	s.createProduct(vendor, shop.ID, "Mango", 2500)

	// Listing and reading require no session.
	resp := s.do(http.MethodGet, "/api/v1/shops", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drain(resp)

	resp = s.do(http.MethodGet, "/api/v1/shops/"+shop.ID, nil)
	s.Equal(http.StatusOK, resp.StatusCode)

	var env shopEnvelope
	s.decode(resp, &env)
	s.Equal("Somchai's Fruit Stand", env.Shop.Name)

	resp = s.do(http.MethodGet, "/api/v1/shops/"+shop.ID+"/products", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drain(resp)
}

func (s *Suite) TestUpdateShop_OtherVendorForbidden() {
	owner, _ := s.register("Somchai", "12/3", "secret1", "VENDOR")
	other, _ := s.register("Malee", "45/6", "secret1", "VENDOR")
	shop := s.createShop(owner, "Somchai's Fruit Stand")

	resp := s.putJSON("/api/v1/shops/"+shop.ID, dto.UpdateShopRequest{Name: "Hijacked"}, other)
	defer s.drain(resp)

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestUpdateProduct_OwnershipAndAdminOverride() {
	owner, _ := s.register("Somchai", "12/3", "secret1", "VENDOR")
	other, _ := s.register("Malee", "45/6", "secret1", "VENDOR")
	admin := s.registerAdmin("1/1", "admin1pass")

	shop := s.createShop(owner, "Somchai's Fruit Stand")
	product := s.createProduct(owner, shop.ID, "Mango", 2500)

	update := dto.UpdateProductRequest{Name: "Ripe Mango", PriceSatang: 3000, Stock: 8}

	resp := s.putJSON("/api/v1/products/"+product.ID, update, other)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.drain(resp)

	resp = s.putJSON("/api/v1/products/"+product.ID, update, owner)
	s.Equal(http.StatusOK, resp.StatusCode)

	var env productEnvelope
	s.decode(resp, &env)
	s.Equal(int64(3000), env.Product.PriceSatang)

	resp = s.putJSON("/api/v1/products/"+product.ID, update, admin)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drain(resp)
}

func (s *Suite) TestDeleteShop_AdminOverride() {
	owner, _ := s.register("Somchai", "12/3", "secret1", "VENDOR")
	admin := s.registerAdmin("1/1", "admin1pass")
	shop := s.createShop(owner, "Somchai's Fruit Stand")

	resp := s.do(http.MethodDelete, "/api/v1/shops/"+shop.ID, admin)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drain(resp)

	resp = s.do(http.MethodGet, "/api/v1/shops/"+shop.ID, nil)
	defer s.drain(resp)
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestAdminRoutes_RequireAdmin() {
	vendor, _ := s.register("Somchai", "12/3", "secret1", "VENDOR")

	resp := s.do(http.MethodGet, "/api/v1/admin/users", vendor)
	s.Equal(http.StatusForbidden, resp.StatusCode)
	s.drain(resp)

	resp = s.do(http.MethodGet, "/api/v1/admin/users", nil)
	defer s.drain(resp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestAdmin_SetUserRole() {
	_, user := s.register("Somchai", "12/3", "secret1", "")
	admin := s.registerAdmin("1/1", "admin1pass")

	resp := s.putJSON("/api/v1/admin/users/"+user.ID+"/role", dto.UpdateRoleRequest{Role: "VENDOR"}, admin)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drain(resp)

	var role string
	err := s.Postgres.DB.QueryRow(`SELECT role FROM users WHERE id = $1`, user.ID).Scan(&role)
	s.Require().NoError(err)
	s.Equal("VENDOR", role)
}

// Deleting a user through the admin API deactivates the account; the
// row stays so shops and products keep their owner reference.
func (s *Suite) TestAdmin_DeleteUserDeactivates() {
	cookie, user := s.register("Somchai", "12/3", "secret1", "")
	admin := s.registerAdmin("1/1", "admin1pass")

	resp := s.do(http.MethodDelete, "/api/v1/admin/users/"+user.ID, admin)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.drain(resp)

	var active bool
	err := s.Postgres.DB.QueryRow(`SELECT is_active FROM users WHERE id = $1`, user.ID).Scan(&active)
	s.Require().NoError(err)
	s.False(active)

	resp = s.do(http.MethodGet, "/api/v1/auth/me", cookie)
	defer s.drain(resp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
