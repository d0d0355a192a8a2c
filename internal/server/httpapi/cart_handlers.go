package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopkart-io/shopkart/internal/common"
)

func (s *Server) handleCart(c *gin.Context) {
	cart, err := s.orders.Cart(c.Request.Context(), userID(c))
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type addToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (s *Server) handleAddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart, err := s.orders.AddToCart(c.Request.Context(), userID(c), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

type updateItemRequest struct {
	Action string `json:"action"`
}

func (s *Server) handleUpdateCartItem(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart, err := s.orders.UpdateItem(c.Request.Context(), userID(c), itemID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
		case errors.Is(err, common.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		default:
			s.internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) handleRemoveCartItem(c *gin.Context) {
	itemID, ok := pathID(c)
	if !ok {
		return
	}

	cart, err := s.orders.RemoveItem(c.Request.Context(), userID(c), itemID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (s *Server) handleClearCart(c *gin.Context) {
	cart, err := s.orders.Clear(c.Request.Context(), userID(c))
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in cart"})
		return 0, false
	}
	return id, true
}
