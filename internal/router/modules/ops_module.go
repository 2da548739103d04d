package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OpsModule serves /healthz and, when a gatherer is set, /metrics.
type OpsModule struct {
	Gatherer prometheus.Gatherer
}

func NewOpsModule(g prometheus.Gatherer) *OpsModule { return &OpsModule{Gatherer: g} }

func (m *OpsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m.Gatherer != nil {
		rg.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
	}
}
