package controllers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/aldeanavidad/tienda/pkg/response"
)

type HealthController struct {
	db      *gorm.DB
	started time.Time
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db, started: time.Now()}
}

// Health is the liveness probe. It never touches the database.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]interface{}{
		"ok":     true,
		"uptime": time.Since(c.started).Round(time.Second).String(),
	})
}

// DBCheck is the readiness probe: a real round trip to the database.
func (c *HealthController) DBCheck(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := c.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "Base de datos no disponible")
		return
	}
	response.Success(w, map[string]interface{}{"ok": true, "db": "up"})
}
