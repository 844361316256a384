package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/lecturebot-api-go/pkg/models"
	"github.com/arnavshah/lecturebot-api-go/pkg/scheduler"
)

const noMoreToday = "No more lectures today"

// bindNow reads the caller's NowContext from day plus minutes or at=HH:MM
func bindNow(c *gin.Context) (models.NowContext, error) {
	now := models.NowContext{Weekday: c.Query("day")}

	switch {
	case c.Query("at") != "":
		m, err := scheduler.ParseClock(c.Query("at"))
		if err != nil {
			return now, err
		}
		now.Minutes = m
	case c.Query("minutes") != "":
		m, err := strconv.Atoi(c.Query("minutes"))
		if err != nil {
			return now, fmt.Errorf("%w: minutes %q", scheduler.ErrInvalidNow, c.Query("minutes"))
		}
		now.Minutes = m
	default:
		return now, fmt.Errorf("%w: minutes or at is required", scheduler.ErrInvalidNow)
	}

	return scheduler.CheckNow(now)
}

// GetCatalog returns the professor and course tables
func (h *Handler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.Scheduler.Catalog)
}

// GetSchedule returns occurrences for an optional day and section
func (h *Handler) GetSchedule(c *gin.Context) {
	occs, err := h.Scheduler.Day(c.Query("day"), c.Query("section"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.RecordUsage(c, len(occs), 0)
	c.JSON(http.StatusOK, gin.H{"schedule": occs})
}

// GetNext returns the next lecture today for the caller's clock
func (h *Handler) GetNext(c *gin.Context) {
	now, err := bindNow(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	next, err := h.Scheduler.Next(now, c.Query("section"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Metrics.ObserveNext(next != nil)
	h.RecordUsage(c, 0, 0)

	if next == nil {
		c.JSON(http.StatusOK, gin.H{"next": nil, "message": noMoreToday})
		return
	}
	c.JSON(http.StatusOK, gin.H{"next": next})
}

// StreamNext pushes the live countdown for the next lecture as server-sent
// events until the indicator hides or the client goes away.
func (h *Handler) StreamNext(c *gin.Context) {
	now, err := bindNow(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	next, err := h.Scheduler.Next(now, c.Query("section"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Metrics.ObserveNext(next != nil)
	h.RecordUsage(c, 0, 0)

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	if next == nil {
		c.SSEvent("none", gin.H{"message": noMoreToday})
		return
	}
	c.SSEvent("next", next)
	c.Writer.Flush()

	clock := scheduler.WallClock(now.Minutes, time.Now())
	if h.NewClock != nil {
		clock = h.NewClock(now.Minutes)
	}

	// The request context is the view's lifetime: a disconnect stops the timer.
	scheduler.Watch(c.Request.Context(), next.StartMinutes, clock, h.Tick, func(s models.CountdownStatus) {
		c.SSEvent("status", s)
		c.Writer.Flush()
	})
}

// Resolve applies the disambiguation contract to one conversational turn
func (h *Handler) Resolve(c *gin.Context) {
	var req models.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	criteria, res, err := h.Scheduler.Resolve(req.Previous, req.Criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Metrics.ObserveResolution(len(res.Matches), res.NeedsClarification)

	clarifications := 0
	if res.NeedsClarification {
		clarifications = 1
	}
	h.RecordUsage(c, len(res.Matches), clarifications)

	c.JSON(http.StatusOK, models.ResolveResponse{Criteria: criteria, Resolution: res})
}

// GetContext returns the payload the conversational layer is prompted with
func (h *Handler) GetContext(c *gin.Context) {
	ctx, err := h.Scheduler.Context(c.Query("day"), c.DefaultQuery("lang", "en"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.RecordUsage(c, 0, 0)
	c.JSON(http.StatusOK, ctx)
}

// Health reports liveness and the size of the compiled timetable
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"occurrences": len(h.Scheduler.Occurrences),
	})
}
