package handler

import (
	"context"
	"errors"
	"net/http"

	"spiceshop/internal/cart"
	"spiceshop/internal/checkout"
	"spiceshop/internal/domain/model"
	"spiceshop/internal/domain/money"
	"spiceshop/internal/middleware"
	"spiceshop/internal/session"

	"github.com/labstack/echo/v4"
)

// カートに入れる商品のタイトルと価格はカタログから取る
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (model.Product, error)
}

type CartHandler struct {
	products ProductLookup
	sessions *session.Registry
	secure   bool
}

func NewCartHandler(products ProductLookup, sessions *session.Registry, secure bool) *CartHandler {
	return &CartHandler{products: products, sessions: sessions, secure: secure}
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

type checkoutRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// GET /cart のレスポンス
type CartResponse struct {
	Items     []cart.Line     `json:"items"`
	ItemCount int64           `json:"item_count"`
	Total     money.Money     `json:"total"`
	IsOpen    bool            `json:"is_open"`
	Checkout  checkout.Status `json:"checkout"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")
	g.Use(middleware.CartSession(h.sessions, h.secure))

	g.GET("", h.get)
	g.DELETE("", h.clear)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id", h.updateQuantity)
	g.DELETE("/items/:id", h.removeItem)
	g.POST("/toggle", h.toggle)
	g.POST("/checkout", h.checkout)
}

func cartSession(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(middleware.CtxCartSessionKey).(*session.Session)
	return s, ok && s != nil
}

func toCartResponse(st cart.State, s *session.Session) CartResponse {
	return CartResponse{
		Items:     st.Lines(),
		ItemCount: st.ItemCount(),
		Total:     st.Total(),
		IsOpen:    st.IsOpen,
		Checkout:  s.Checkout.Status(),
	}
}

func (h *CartHandler) get(c echo.Context) error {
	s, ok := cartSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, toCartResponse(s.Cart.State(), s))
}

// POST /cart/items
// 追加したらカートを開く（開いていればそのまま）
func (h *CartHandler) addItem(c echo.Context) error {
	s, ok := cartSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "product_id required"})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 || req.Quantity > cart.MaxLineQuantity {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
	}

	p, err := h.products.GetProduct(c.Request().Context(), req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	line := cart.Line{ID: p.ID, Title: p.Title, UnitPrice: p.Price, Quantity: req.Quantity}
	st := s.Cart.DispatchFunc(func(cur cart.State) []cart.Action {
		actions := []cart.Action{cart.AddItem{Line: line}}
		if !cur.IsOpen {
			actions = append(actions, cart.ToggleCartVisibility{})
		}
		return actions
	})
	return c.JSON(http.StatusOK, toCartResponse(st, s))
}

// PATCH /cart/items/:id  quantity <= 0 は削除
func (h *CartHandler) updateQuantity(c echo.Context) error {
	s, ok := cartSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity > cart.MaxLineQuantity {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
	}

	st := s.Cart.Dispatch(cart.UpdateQuantity{ID: c.Param("id"), Quantity: req.Quantity})
	return c.JSON(http.StatusOK, toCartResponse(st, s))
}

func (h *CartHandler) removeItem(c echo.Context) error {
	s, ok := cartSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	st := s.Cart.Dispatch(cart.RemoveItem{ID: c.Param("id")})
	return c.JSON(http.StatusOK, toCartResponse(st, s))
}

func (h *CartHandler) clear(c echo.Context) error {
	s, ok := cartSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	st := s.Cart.Dispatch(cart.ClearCart{})
	return c.JSON(http.StatusOK, toCartResponse(st, s))
}

func (h *CartHandler) toggle(c echo.Context) error {
	s, ok := cartSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	st := s.Cart.Dispatch(cart.ToggleCartVisibility{})
	return c.JSON(http.StatusOK, toCartResponse(st, s))
}

// POST /cart/checkout
func (h *CartHandler) checkout(c echo.Context) error {
	s, ok := cartSession(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	s.Checkout.SetForm(checkout.Form{CustomerName: req.CustomerName, CustomerPhone: req.CustomerPhone})

	order, err := s.Checkout.Submit(c.Request().Context())
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, order)
	case errors.Is(err, checkout.ErrValidation), errors.Is(err, checkout.ErrEmptyCart):
		msg := s.Checkout.Status().Error
		if msg == "" {
			msg = err.Error()
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
	case errors.Is(err, checkout.ErrSubmissionInProgress):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "order is being submitted"})
	case errors.Is(err, checkout.ErrSubmissionFailed):
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: checkout.RetryMessage})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
