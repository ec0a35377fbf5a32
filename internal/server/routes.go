package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/manshift/internal/assign"
	"github.com/zulandar/manshift/internal/models"
	"gorm.io/gorm"
)

// registerRoutes sets up the read-only API on the Gin router.
func registerRoutes(router *gin.Engine, gdb *gorm.DB) {
	router.GET("/api/sessions", handleSessionList(gdb))
	router.GET("/api/sessions/:id/summary", handleSessionSummary(gdb))
	router.GET("/api/sessions/:id/workers/:wid/day", handleWorkerDay(gdb))
}

type sessionRow struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	ShiftKind   string `json:"shift_kind"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	WorkerCount int64  `json:"worker_count"`
	ItemCount   int64  `json:"item_count"`
}

func handleSessionList(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessions []models.Session
		if err := gdb.Order("created_at DESC").Find(&sessions).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([]sessionRow, 0, len(sessions))
		for _, s := range sessions {
			row := sessionRow{
				ID:        s.ID,
				Name:      s.Name,
				ShiftKind: s.ShiftKind,
				IsActive:  s.IsActive,
				CreatedAt: s.CreatedAt.Format("2006-01-02 15:04"),
			}
			gdb.Model(&models.Worker{}).Where("session_id = ?", s.ID).Count(&row.WorkerCount)
			gdb.Model(&models.WorkItem{}).Where("session_id = ?", s.ID).Count(&row.ItemCount)
			rows = append(rows, row)
		}
		c.JSON(http.StatusOK, gin.H{"sessions": rows})
	}
}

type workerSummary struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	LimitMH   float64 `json:"limit_mh"`
	UsedMH    float64 `json:"used_mh"`
	TaskCount int64   `json:"task_count"`
}

func handleSessionSummary(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var session models.Session
		if err := gdb.First(&session, id).Error; err != nil {
			notFoundOrError(c, err)
			return
		}

		var workers []models.Worker
		if err := gdb.Where("session_id = ?", id).Order("id").Find(&workers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		rows := make([]workerSummary, 0, len(workers))
		for _, w := range workers {
			row := workerSummary{ID: w.ID, Name: w.Name, LimitMH: w.LimitMH, UsedMH: w.UsedMH}
			// Productive tasks only: breaks and direct entries don't count.
			gdb.Model(&models.Assignment{}).
				Where("worker_id = ? AND category = ?", w.ID, models.CategoryNormal).
				Count(&row.TaskCount)
			rows = append(rows, row)
		}

		c.JSON(http.StatusOK, gin.H{
			"session": gin.H{
				"id":         session.ID,
				"name":       session.Name,
				"shift_kind": session.ShiftKind,
				"is_active":  session.IsActive,
			},
			"workers": rows,
		})
	}
}

func handleWorkerDay(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		workerID, ok := uintParam(c, "wid")
		if !ok {
			return
		}

		day, err := assign.BuildWorkerDay(gdb, sessionID, workerID)
		if err != nil {
			notFoundOrError(c, err)
			return
		}
		c.JSON(http.StatusOK, day)
	}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

func notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
