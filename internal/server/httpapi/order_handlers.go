package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopkart-io/shopkart/internal/common"
)

func (s *Server) handleOrders(c *gin.Context) {
	history, err := s.orders.History(c.Request.Context(), userID(c))
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) handlePlaceOrder(c *gin.Context) {
	order, err := s.orders.PlaceOrder(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, common.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
