package server

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pie-314/trx/consts"
	"github.com/pie-314/trx/provider"
	"github.com/pie-314/trx/searcher"
	"go.uber.org/zap"
)

const loggerKey = "logger"

// Run serves the search API on addr until the server fails
func Run(addr string, s *searcher.Searcher, details *provider.DetailsCache, logger *zap.Logger) error {
	engine := New(s, details, logger)
	logger.Info("Starting server", zap.String("addr", addr))
	return engine.Run(addr)
}

// New creates the API's HTTP handler
func New(s *searcher.Searcher, details *provider.DetailsCache, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		ginzap.Ginzap(logger, time.RFC3339, true),
		recovery(logger, true),
	)

	api := engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Set(loggerKey, logger)
	})
	api.GET("/version", getVersion)
	api.GET("/search", searchPackages(s))
	api.GET("/packages/:provider/:name", getPackage(s.Providers(), details))
	return engine
}

func getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]string{
		"Version": consts.Version,
	})
}

func abortWithClientError(c *gin.Context, status int, err error) {
	logger := c.MustGet(loggerKey).(*zap.Logger)
	if status/100 == 5 {
		logger.Error("Aborting with server error", zap.Error(err))
	} else {
		logger.Info("Aborting with client error", zap.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, map[string]string{
		"Error": err.Error(),
	})
}
