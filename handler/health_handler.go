package handler

import (
	"context"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	Mongo *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{Mongo: client}
}

// GetHealth reports service liveness, store connectivity and host load.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if err := h.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		dbStatus = "down"
	}

	utils.Success(c, "", gin.H{
		"database":       dbStatus,
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
	})
}
