package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mcruz-dev/takeout-backoffice/internal/cart"
	"github.com/mcruz-dev/takeout-backoffice/internal/combo"
	"github.com/mcruz-dev/takeout-backoffice/internal/dish"
)

func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dish.ErrNotFound), errors.Is(err, combo.ErrNotFound), errors.Is(err, cart.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, cart.ErrBadItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return 0, false
	}
	return id, true
}

func browseDishesHandler(svc *dish.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := strconv.ParseInt(c.Query("category_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		dishes, err := svc.ListByCategory(c.Request.Context(), categoryID)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": dishes})
	}
}

func browseCombosHandler(svc *combo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, err := strconv.ParseInt(c.Query("category_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		combos, err := svc.ListByCategory(c.Request.Context(), categoryID)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": combos})
	}
}

func comboDishesHandler(svc *combo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		options, err := svc.DishOptions(c.Request.Context(), id)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": options})
	}
}

func addToCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		var req cart.AddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		line, err := svc.Add(c.Request.Context(), userID, req)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

func listCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		lines, err := svc.List(c.Request.Context(), userID)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": lines})
	}
}

func clearCartHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := pathUserID(c)
		if !ok {
			return
		}
		if err := svc.Clear(c.Request.Context(), userID); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func removeLineHandler(svc *cart.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := pathUserID(c); !ok {
			return
		}
		if err := svc.RemoveLine(c.Request.Context(), c.Param("line_id")); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
