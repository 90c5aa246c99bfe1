package http_init

import (
	"log"
	"net"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
}

func NewControllerPool() *ControllerPool {
	return NewControllerPoolWithEngine(gin.Default())
}

// Title ids are free text and may contain '/', so routing matches the
// escaped path and unescapes params afterwards.
func NewControllerPoolWithEngine(engine *gin.Engine) *ControllerPool {
	engine.UseRawPath = true
	engine.UnescapePathValues = true
	rg := engine.Group(apiPrefix)
	return &ControllerPool{
		pool:   make([]Controller, 0, 10),
		rg:     rg,
		engine: engine,
	}
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) RunAll(host, port string) {
	if err := pool.engine.Run(net.JoinHostPort(host, port)); err != nil {
		log.Fatalf("failed to run HTTP server: %v", err)
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}

func (pool *ControllerPool) Engine() *gin.Engine {
	return pool.engine
}
