package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mcruz-dev/takeout-backoffice/internal/combo"
	"github.com/mcruz-dev/takeout-backoffice/internal/dish"
	"github.com/mcruz-dev/takeout-backoffice/internal/employee"
	"github.com/mcruz-dev/takeout-backoffice/internal/report"
)

// writeErr maps the engines' sentinel errors onto HTTP statuses.
func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dish.ErrNotFound), errors.Is(err, combo.ErrNotFound), errors.Is(err, employee.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, dish.ErrOnSale), errors.Is(err, dish.ErrReferencedByCombo),
		errors.Is(err, combo.ErrOnSale), errors.Is(err, combo.ErrEnableFailed),
		errors.Is(err, employee.ErrAlreadyExist):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, report.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, employee.ErrBadCredentials), errors.Is(err, employee.ErrAccountLocked):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func pathStatus(c *gin.Context) (int, bool) {
	s, err := strconv.Atoi(c.Param("status"))
	if err != nil || (s != 0 && s != 1) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return 0, false
	}
	return s, true
}

// queryIDs parses ?ids=1,2,3 into a batch.
func queryIDs(c *gin.Context) ([]int64, bool) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids is required"})
		return nil, false
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ids"})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func queryDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	begin, err := time.Parse("2006-01-02", c.Query("begin"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid begin date"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date"})
		return time.Time{}, time.Time{}, false
	}
	return begin, end, true
}

// ---------- employee ----------

func loginHandler(svc *employee.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req employee.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		resp, err := svc.Login(c.Request.Context(), req)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func createEmployeeHandler(svc *employee.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req employee.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		id, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func updateEmployeeHandler(svc *employee.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req employee.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := svc.Update(c.Request.Context(), id, req); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

func employeeStatusHandler(svc *employee.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		status, ok := pathStatus(c)
		if !ok {
			return
		}
		if err := svc.SetStatus(c.Request.Context(), id, status); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

func getEmployeeHandler(svc *employee.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		e, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// ---------- dish ----------

func createDishHandler(svc *dish.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dish.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		id, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func updateDishHandler(svc *dish.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req dish.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := svc.Update(c.Request.Context(), id, req); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

func deleteDishesHandler(svc *dish.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, ok := queryIDs(c)
		if !ok {
			return
		}
		if err := svc.DeleteBatch(c.Request.Context(), ids); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

func getDishHandler(svc *dish.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		view, err := svc.Detail(c.Request.Context(), id)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func listDishesHandler(svc *dish.Service) gin.HandlerFunc {
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

func dishStatusHandler(svc *dish.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		status, ok := pathStatus(c)
		if !ok {
			return
		}
		if err := svc.SetStatus(c.Request.Context(), id, status); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// ---------- combo ----------

func createComboHandler(svc *combo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req combo.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		id, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func updateComboHandler(svc *combo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req combo.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if err := svc.Update(c.Request.Context(), id, req); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

func deleteCombosHandler(svc *combo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ids, ok := queryIDs(c)
		if !ok {
			return
		}
		if err := svc.DeleteBatch(c.Request.Context(), ids); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

func getComboHandler(svc *combo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		view, err := svc.Detail(c.Request.Context(), id)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func comboStatusHandler(svc *combo.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		status, ok := pathStatus(c)
		if !ok {
			return
		}
		if err := svc.SetStatus(c.Request.Context(), id, status); err != nil {
			writeErr(c, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// ---------- reports ----------

func turnoverHandler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin, end, ok := queryDateRange(c)
		if !ok {
			return
		}
		out, err := svc.TurnoverSeries(c.Request.Context(), begin, end)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func userReportHandler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin, end, ok := queryDateRange(c)
		if !ok {
			return
		}
		out, err := svc.UserSeries(c.Request.Context(), begin, end)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func orderReportHandler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin, end, ok := queryDateRange(c)
		if !ok {
			return
		}
		out, err := svc.OrderSeries(c.Request.Context(), begin, end)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func salesTop10Handler(svc *report.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		begin, end, ok := queryDateRange(c)
		if !ok {
			return
		}
		out, err := svc.SalesTop10(c.Request.Context(), begin, end)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}
